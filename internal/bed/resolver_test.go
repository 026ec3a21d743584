package bed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ousamg/gene2bed/internal/feature"
)

// countingSource is a SynonymSource that records how many lookups it served.
type countingSource struct {
	synonyms map[string][]feature.Synonym
	calls    int
}

func (c *countingSource) Synonyms(region, authority string) []feature.Synonym {
	c.calls++
	var matches []feature.Synonym
	for _, syn := range c.synonyms[region] {
		if syn.Authority == authority {
			matches = append(matches, syn)
		}
	}
	return matches
}

// emptySource never knows any synonyms but counts as a lookup capability.
func emptySource() *countingSource {
	return &countingSource{synonyms: map[string][]feature.Synonym{}}
}

func TestResolveName_NoRegionReference(t *testing.T) {
	f := &feature.Feature{Chrom: "GL000009.2"}
	cache := make(NameCache)

	assert.Equal(t, "GL000009.2", ResolveName(f, cache))
}

func TestResolveName_UCSCSynonymWins(t *testing.T) {
	src := &countingSource{synonyms: map[string][]feature.Synonym{
		"X": {{Name: "chrX_alt", Authority: "UCSC"}},
	}}

	// Synonym wins regardless of chromosome/reference flags
	f := &feature.Feature{
		Chrom: "X",
		Slice: &feature.Slice{Name: "X", Source: src},
	}

	assert.Equal(t, "chrX_alt", ResolveName(f, make(NameCache)))
}

func TestResolveName_MTBecomesChrM(t *testing.T) {
	tests := []struct {
		name  string
		slice *feature.Slice
	}{
		{"reference flagged", &feature.Slice{Name: "MT", Chromosome: true, Reference: true, Source: emptySource()}},
		{"not reference flagged", &feature.Slice{Name: "MT", Chromosome: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &feature.Feature{Chrom: "MT", Slice: tt.slice}
			assert.Equal(t, "chrM", ResolveName(f, make(NameCache)))
		})
	}
}

func TestResolveName_ReferenceChromosomeGetsPrefix(t *testing.T) {
	f := &feature.Feature{
		Chrom: "2",
		Slice: &feature.Slice{Name: "2", Chromosome: true, Reference: true, Source: emptySource()},
	}

	assert.Equal(t, "chr2", ResolveName(f, make(NameCache)))
}

func TestResolveName_Fallthrough(t *testing.T) {
	tests := []struct {
		name string
		f    *feature.Feature
		want string
	}{
		{
			"chromosome without lookup capability",
			&feature.Feature{Chrom: "2", Slice: &feature.Slice{Name: "2", Chromosome: true, Reference: true}},
			"2",
		},
		{
			"chromosome not flagged reference",
			&feature.Feature{Chrom: "2", Slice: &feature.Slice{Name: "2", Chromosome: true, Source: emptySource()}},
			"2",
		},
		{
			"non-chromosome region",
			&feature.Feature{Chrom: "KI270713.1", Slice: &feature.Slice{Name: "KI270713.1", Source: emptySource()}},
			"KI270713.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveName(tt.f, make(NameCache)))
		})
	}
}

func TestResolveName_Memoizes(t *testing.T) {
	src := &countingSource{synonyms: map[string][]feature.Synonym{
		"1": {{Name: "chr1", Authority: "UCSC"}},
	}}
	f := &feature.Feature{Chrom: "1", Slice: &feature.Slice{Name: "1", Source: src}}
	cache := make(NameCache)

	first := ResolveName(f, cache)
	second := ResolveName(f, cache)

	assert.Equal(t, "chr1", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls, "second call must not re-derive")
}

func TestResolveName_CacheIsInsertOnly(t *testing.T) {
	f := &feature.Feature{
		Chrom: "2",
		Slice: &feature.Slice{Name: "2", Chromosome: true, Reference: true, Source: emptySource()},
	}
	cache := NameCache{"2": "alreadyThere"}

	// A pre-existing entry is returned as-is, never overwritten
	assert.Equal(t, "alreadyThere", ResolveName(f, cache))
	assert.Equal(t, "alreadyThere", cache["2"])
	require.Len(t, cache, 1)
}

func TestResolveName_CacheSharedAcrossFeatures(t *testing.T) {
	src := emptySource()
	slice := &feature.Slice{Name: "7", Chromosome: true, Reference: true, Source: src}
	cache := make(NameCache)

	ResolveName(&feature.Feature{Chrom: "7", Slice: slice}, cache)
	ResolveName(&feature.Feature{Chrom: "7", Slice: slice}, cache)
	ResolveName(&feature.Feature{Chrom: "7", Slice: slice}, cache)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, "chr7", cache["7"])
}
