package feature

// Synonym is an alternate name for a sequence region, tagged by the naming
// authority that recognizes it (e.g., "UCSC").
type Synonym struct {
	Name      string
	Authority string
}

// SynonymSource resolves alternate region names for a naming authority.
// Implemented only by types backed by a real lookup service; a Slice with a
// nil Source has no lookup capability.
type SynonymSource interface {
	Synonyms(region, authority string) []Synonym
}

// Slice identifies the sequence region a feature's coordinates are expressed
// in. Start is the genomic position of the slice's first base; toplevel
// slices start at 1, sub-slices carry the offset needed to project features
// back onto the full region.
type Slice struct {
	Name       string
	Start      int64
	Chromosome bool          // region is classified as a chromosome
	Reference  bool          // region is part of the primary assembly
	Source     SynonymSource // nil when no synonym lookup service backs this region
}

// Toplevel returns true if the slice covers its region from the first base.
func (s *Slice) Toplevel() bool {
	return s.Start <= 1
}

// UCSCSynonyms returns the region's synonyms recognized by the UCSC naming
// authority, or nil if the slice has no lookup capability.
func (s *Slice) UCSCSynonyms() []Synonym {
	if s.Source == nil {
		return nil
	}
	return s.Source.Synonyms(s.Name, "UCSC")
}
