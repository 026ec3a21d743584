package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ousamg/gene2bed/internal/feature"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func krasSet() *feature.Set {
	set := feature.NewSet()
	set.Add(&feature.Transcript{
		Feature: feature.Feature{
			ID:     "ENST00000311936",
			Chrom:  "12",
			Start:  25205246,
			End:    25250929,
			Strand: -1,
			Slice:  &feature.Slice{Name: "12", Start: 1, Chromosome: true, Reference: true},
		},
		GeneID:          "ENSG00000133703",
		GeneName:        "KRAS",
		Biotype:         "protein_coding",
		CDNACodingStart: 122,
		CDNACodingEnd:   301,
		Exons: []feature.Exon{
			{Number: 1, Start: 25250751, End: 25250929},
			{Number: 2, Start: 25245274, End: 25245395},
		},
	})
	set.Add(&feature.Transcript{
		Feature: feature.Feature{
			ID:     "ENST00000000002",
			Chrom:  "1",
			Start:  100,
			End:    400,
			Strand: 1,
			Slice:  &feature.Slice{Name: "1", Start: 1, Chromosome: true, Reference: true},
		},
		Biotype: "lncRNA",
		Exons:   []feature.Exon{{Number: 1, Start: 100, End: 400}},
	})
	return set
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)

	count, err := s.TranscriptCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPutAndLoadSet(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.PutSet(krasSet()))

	count, err := s.TranscriptCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	loaded, err := s.LoadSet()
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Count())

	tr := loaded.Get("ENST00000311936")
	require.NotNil(t, tr)
	assert.Equal(t, "KRAS", tr.GeneName)
	assert.Equal(t, "12", tr.Chrom)
	assert.Equal(t, int64(25205246), tr.Start)
	assert.Equal(t, int8(-1), tr.Strand)
	assert.Equal(t, int64(122), tr.CDNACodingStart)
	assert.Equal(t, int64(301), tr.CDNACodingEnd)
	require.Len(t, tr.Exons, 2)
	assert.Equal(t, int64(25250751), tr.Exons[0].Start)

	require.NotNil(t, tr.Slice)
	assert.True(t, tr.Slice.Chromosome)
	assert.True(t, tr.Slice.Reference)
	assert.Nil(t, tr.Slice.Source, "synonym sources are not persisted")

	nc := loaded.Get("ENST00000000002")
	require.NotNil(t, nc)
	assert.False(t, nc.Coding())
}

func TestPutSetReplacesExisting(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.PutSet(krasSet()))
	require.NoError(t, s.PutSet(krasSet()))

	count, err := s.TranscriptCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count, "re-indexing must not duplicate rows")
}

func TestLoadSetSharesSlices(t *testing.T) {
	s := openInMemory(t)

	set := feature.NewSet()
	slice := &feature.Slice{Name: "7", Start: 1, Chromosome: true, Reference: true}
	set.Add(&feature.Transcript{Feature: feature.Feature{ID: "A", Chrom: "7", Start: 1, End: 10, Strand: 1, Slice: slice}})
	set.Add(&feature.Transcript{Feature: feature.Feature{ID: "B", Chrom: "7", Start: 20, End: 30, Strand: 1, Slice: slice}})
	require.NoError(t, s.PutSet(set))

	loaded, err := s.LoadSet()
	require.NoError(t, err)
	assert.Same(t, loaded.Get("A").Slice, loaded.Get("B").Slice)
}

func TestAttachSynonymSource(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.PutSet(krasSet()))

	loaded, err := s.LoadSet()
	require.NoError(t, err)

	src := stubSource{}
	AttachSynonymSource(loaded, src)

	for _, chrom := range loaded.Chromosomes() {
		for _, tr := range loaded.ByChrom(chrom) {
			require.NotNil(t, tr.Slice)
			assert.Equal(t, src, tr.Slice.Source)
		}
	}
}

type stubSource struct{}

func (stubSource) Synonyms(region, authority string) []feature.Synonym { return nil }
