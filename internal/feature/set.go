package feature

import "sort"

// Set is a chromosome-indexed collection of transcripts.
type Set struct {
	// transcripts stores transcripts indexed by raw region name
	transcripts map[string][]*Transcript
}

// NewSet creates a new empty transcript set.
func NewSet() *Set {
	return &Set{
		transcripts: make(map[string][]*Transcript),
	}
}

// Add adds a transcript to the set.
func (s *Set) Add(t *Transcript) {
	s.transcripts[t.Chrom] = append(s.transcripts[t.Chrom], t)
}

// ByChrom returns all transcripts for a region in insertion order.
func (s *Set) ByChrom(chrom string) []*Transcript {
	return s.transcripts[chrom]
}

// Get returns a specific transcript by ID, or nil if not found.
func (s *Set) Get(id string) *Transcript {
	for _, transcripts := range s.transcripts {
		for _, t := range transcripts {
			if t.ID == id {
				return t
			}
		}
	}
	return nil
}

// Count returns the total number of transcripts in the set.
func (s *Set) Count() int {
	count := 0
	for _, transcripts := range s.transcripts {
		count += len(transcripts)
	}
	return count
}

// Chromosomes returns a sorted list of region names in the set.
func (s *Set) Chromosomes() []string {
	chroms := make([]string, 0, len(s.transcripts))
	for chrom := range s.transcripts {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	return chroms
}
