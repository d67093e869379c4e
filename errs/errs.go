// Package errs defines the sentinel errors returned by the wire, catalog,
// and loader packages.
//
// Decode errors and lookup misses are returned as distinct sentinels so
// callers can use errors.Is without depending on string matching.
package errs

import "errors"

// Decode / record-framing errors (PCP's PM_ERR_LOGREC family).
var (
	// ErrMalformedRecord is returned when a record's trailer length does
	// not match its header length, or a fixed-size field cannot be read
	// in full.
	ErrMalformedRecord = errors.New("pcpmeta: malformed record")
	// ErrLabelJSONTooLarge is returned when a LABEL record's jsonlen is
	// negative or exceeds the maximum label JSON length.
	ErrLabelJSONTooLarge = errors.New("pcpmeta: label json length out of range")
	// ErrLabelCountOverflow is returned when a LABEL record's nlabels
	// would read past the end of the record payload.
	ErrLabelCountOverflow = errors.New("pcpmeta: label count overflows payload")
	// ErrNoDescriptors is returned by the loader when an archive's
	// metadata stream contains zero DESC records.
	ErrNoDescriptors = errors.New("pcpmeta: no descriptors found in archive")
	// ErrBadTextType is returned when a TEXT record's type word is
	// missing a content bit (ONELINE/HELP) or does not carry exactly
	// one identifier bit (PMID/INDOM). Archives in the wild contain
	// such records; loaders usually skip them rather than abort.
	ErrBadTextType = errors.New("pcpmeta: text record type flags invalid")
)

// Descriptor conflict errors (PCP's PM_ERR_LOGCHANGE* family).
var (
	ErrChangeType  = errors.New("pcpmeta: descriptor type changed")
	ErrChangeSem   = errors.New("pcpmeta: descriptor semantics changed")
	ErrChangeIndom = errors.New("pcpmeta: descriptor indom changed")
	ErrChangeUnits = errors.New("pcpmeta: descriptor units changed")
)

// Lookup misses (PCP's PM_ERR_INDOM_LOG, PM_ERR_INST_LOG, PM_ERR_PMID_LOG,
// PM_ERR_NOLABELS, PM_ERR_TEXT).
var (
	ErrIndomNotFound    = errors.New("pcpmeta: instance domain not found")
	ErrInstanceNotFound = errors.New("pcpmeta: instance not found")
	ErrPMIDNotFound     = errors.New("pcpmeta: pmid not found")
	ErrNoLabels         = errors.New("pcpmeta: no labels for type/ident")
	ErrNoText           = errors.New("pcpmeta: no help text for ident/type")
)

// ErrNotWritable is returned by Put* operations given a nil io.Writer.
var ErrNotWritable = errors.New("pcpmeta: catalog is not writable")
