// Package feature provides the genomic feature and transcript data model.
package feature

import "sort"

// Interval is the closed set of encodable genomic features.
// Only Feature and Transcript implement it.
type Interval interface {
	isInterval()
}

// Feature represents a genomic interval on a sequence region.
type Feature struct {
	ID     string // Display identifier (e.g., ENSG00000133703)
	Chrom  string // Raw sequence region name (e.g., "12", "MT", "GL000009.2")
	Start  int64  // Region start (1-based)
	End    int64  // Region end (1-based, inclusive)
	Strand int8   // +1 or -1
	Slice  *Slice // Region reference, nil if the feature carries none
}

func (f *Feature) isInterval() {}

// IsForwardStrand returns true if the feature is on the forward strand.
func (f *Feature) IsForwardStrand() bool {
	return f.Strand == 1
}

// IsReverseStrand returns true if the feature is on the reverse strand.
func (f *Feature) IsReverseStrand() bool {
	return f.Strand == -1
}

// Length returns the feature length in bases.
func (f *Feature) Length() int64 {
	return f.End - f.Start + 1
}

// Transcript represents a specific gene isoform with exon structure.
type Transcript struct {
	Feature
	GeneID          string // Parent gene ID
	GeneName        string // Parent gene symbol
	Biotype         string // Transcript biotype
	Exons           []Exon // Exons, any order until sorted for output
	CDNACodingStart int64  // Coding start in spliced cDNA coordinates, 0 if non-coding
	CDNACodingEnd   int64  // Coding end in spliced cDNA coordinates, 0 if non-coding
}

// Exon represents a single exon within a transcript.
type Exon struct {
	Number int   // Exon number in transcript order (1-based)
	Start  int64 // Genomic start (1-based)
	End    int64 // Genomic end (1-based, inclusive)
}

// Coding returns true if the transcript has a coding translation.
func (t *Transcript) Coding() bool {
	return t.CDNACodingStart > 0 && t.CDNACodingEnd > 0
}

// SortedExons returns a copy of the exons sorted by ascending genomic start.
// GTF exon records arrive in transcript order, which is descending on the
// reverse strand.
func (t *Transcript) SortedExons() []Exon {
	exons := make([]Exon, len(t.Exons))
	copy(exons, t.Exons)
	sort.Slice(exons, func(i, j int) bool {
		return exons[i].Start < exons[j].Start
	})
	return exons
}

// ProjectToToplevel returns a copy of the transcript with coordinates
// re-expressed on the toplevel region. Transcripts already on a toplevel
// slice (or with no slice at all) are returned as a plain copy. Exons share
// the transcript's coordinate system and are shifted by the same offset.
func (t *Transcript) ProjectToToplevel() *Transcript {
	projected := *t
	projected.Exons = make([]Exon, len(t.Exons))
	copy(projected.Exons, t.Exons)

	if t.Slice == nil || t.Slice.Toplevel() {
		return &projected
	}

	offset := t.Slice.Start - 1
	projected.Start += offset
	projected.End += offset
	for i := range projected.Exons {
		projected.Exons[i].Start += offset
		projected.Exons[i].End += offset
	}

	toplevel := *t.Slice
	toplevel.Start = 1
	projected.Slice = &toplevel

	return &projected
}
