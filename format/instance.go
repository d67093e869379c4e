package format

// Instance is one (id, name) pair inside an instance domain snapshot.
type Instance struct {
	ID   int32
	Name string
}

// Label is the fixed-size (name offset/len, value offset/len, flags)
// descriptor of one name/value pair within a LabelSet's JSON blob. The
// offsets and lengths index into the owning LabelSet's JSON bytes.
type Label struct {
	NameOffset  uint16
	NameLen     uint16
	ValueOffset uint16
	ValueLen    uint16
	Flags       uint16
}

// LabelWireSize is the on-disk size of a Label struct: five uint16
// fields plus two reserved bytes, for a fixed 12-byte record.
const LabelWireSize = 12

// Name returns the label's name, sliced out of json.
func (l Label) Name(json []byte) []byte {
	return json[l.NameOffset : l.NameOffset+l.NameLen]
}

// Value returns the label's value, sliced out of json.
func (l Label) Value(json []byte) []byte {
	return json[l.ValueOffset : l.ValueOffset+l.ValueLen]
}

// LabelSet is one instance's set of labels, scoped to a JSON document.
type LabelSet struct {
	Inst   int32
	JSON   []byte
	Labels []Label
}

// Equal reports whether two LabelSets are content-equal: same Inst,
// same number of labels, and every (name, value) pair in one appears in
// the other with identical bytes.
func (s LabelSet) Equal(other LabelSet) bool {
	if s.Inst != other.Inst {
		return false
	}
	if len(s.Labels) != len(other.Labels) {
		return false
	}

	for _, a := range s.Labels {
		aName := a.Name(s.JSON)
		found := false
		for _, b := range other.Labels {
			if string(aName) != string(b.Name(other.JSON)) {
				continue
			}
			if string(a.Value(s.JSON)) != string(b.Value(other.JSON)) {
				return false
			}
			found = true

			break
		}
		if !found {
			return false
		}
	}

	return true
}
