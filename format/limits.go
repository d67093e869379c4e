package format

// MaxLabelJSONLen bounds a single LABEL set's JSON blob length on
// decode, the analogue of PCP's PM_MAXLABELJSONLEN. PCP's own limit has
// varied across releases; callers that need a different bound can
// override it through loader.WithMaxLabelJSONLen.
const MaxLabelJSONLen = 8192

// MaxLabels bounds the label count decoded for a single LabelSet,
// guarding the "cursor + nlabels*sizeof(Label) <= payload_end" check
// against integer overflow on a corrupted count.
const MaxLabels = 1024
