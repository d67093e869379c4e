package format

// Label type flags, matching PCP's pmLabel type bits. A label record's
// type word carries exactly one of the hierarchy bits (CONTEXT through
// INSTANCES), possibly combined with the COMPOUND and OPTIONAL
// modifiers, which are masked off before the type is used as a store key.
const (
	LabelContext   uint32 = 1 << 0
	LabelDomain    uint32 = 1 << 1
	LabelIndom     uint32 = 1 << 2
	LabelCluster   uint32 = 1 << 3
	LabelItem      uint32 = 1 << 4
	LabelInstances uint32 = 1 << 5
	LabelCompound  uint32 = 1 << 6
	LabelOptional  uint32 = 1 << 7
)

// LabelTypeMask strips the COMPOUND and OPTIONAL modifier bits from a
// label type word, leaving the hierarchy bit used as a store key.
func LabelTypeMask(typ uint32) uint32 {
	return typ &^ (LabelCompound | LabelOptional)
}

// Help text flags. A TEXT record's type word must carry at least one of
// {TextOneline, TextHelp} and exactly one of {TextPMID, TextIndom}.
const (
	TextOneline uint32 = 1 << 0
	TextHelp    uint32 = 1 << 1
	TextPMID    uint32 = 1 << 2
	TextIndom   uint32 = 1 << 3
	TextDirect  uint32 = 1 << 4
)

// ValidTextType reports whether typ carries a valid combination of help
// text flags: at least one content bit and exactly one identifier bit.
func ValidTextType(typ uint32) bool {
	if typ&(TextOneline|TextHelp) == 0 {
		return false
	}

	pmid := typ&TextPMID != 0
	indom := typ&TextIndom != 0

	return pmid != indom
}

// IDNull is the reserved null pmid/indom identifier. Context-level
// labels are stored under this ident regardless of the ident the record
// carried.
const IDNull uint32 = 0xffffffff
