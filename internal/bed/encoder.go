package bed

import (
	"strconv"
	"strings"

	"github.com/ousamg/gene2bed/internal/feature"
)

// Record is an ordered sequence of BED fields: 6 for a simple feature,
// 12 for a transcript with exon structure.
type Record []string

// String renders the record as a tab-separated line without a terminator.
func (r Record) String() string {
	return strings.Join(r, "\t")
}

// Encode converts a feature into a BED record, dispatching on the feature
// kind. A nil interval yields a nil record and no error.
func Encode(iv feature.Interval, cache NameCache) Record {
	switch f := iv.(type) {
	case *feature.Transcript:
		if f == nil {
			return nil
		}
		return EncodeTranscript(f, cache)
	case *feature.Feature:
		if f == nil {
			return nil
		}
		return EncodeFeature(f, cache)
	default:
		return nil
	}
}

// EncodeFeature converts a plain feature into a 6-column BED record.
// BED coordinates are 0-based half-open, so the start shifts down by one
// while the 1-based inclusive end carries over numerically.
func EncodeFeature(f *feature.Feature, cache NameCache) Record {
	return Record{
		ResolveName(f, cache),
		strconv.FormatInt(f.Start-1, 10),
		strconv.FormatInt(f.End, 10),
		f.ID,
		"0",
		strandSymbol(f.Strand),
	}
}

// EncodeTranscript converts a transcript into a 12-column BED record with
// exon block structure and coding ("thick") boundaries.
//
// Coding transcripts map their spliced coding bounds back to genomic
// coordinates; on the reverse strand the spliced bounds are swapped first,
// since spliced ordering follows transcript direction while genomic ordering
// is always ascending. Non-coding transcripts place both thick bounds on the
// transcript's genomic end with no 0-based adjustment, matching the output
// convention of the UCSC tooling this format targets.
func EncodeTranscript(t *feature.Transcript, cache NameCache) Record {
	t = t.ProjectToToplevel()

	rec := EncodeFeature(&t.Feature, cache)
	bedStart := t.Start - 1

	var thickStart, thickEnd int64
	if t.Coding() {
		codingStart, codingEnd := t.CDNACodingStart, t.CDNACodingEnd
		if t.IsReverseStrand() {
			codingStart, codingEnd = codingEnd, codingStart
		}
		thickStart = t.CDNAToGenomic(codingStart) - 1
		thickEnd = t.CDNAToGenomic(codingEnd)
	} else {
		thickStart = t.End
		thickEnd = t.End
	}

	var sizes, starts strings.Builder
	exons := t.SortedExons()
	for _, exon := range exons {
		sizes.WriteString(strconv.FormatInt(exon.End-exon.Start+1, 10))
		sizes.WriteByte(',')
		starts.WriteString(strconv.FormatInt(exon.Start-1-bedStart, 10))
		starts.WriteByte(',')
	}

	return append(rec,
		strconv.FormatInt(thickStart, 10),
		strconv.FormatInt(thickEnd, 10),
		"0",
		strconv.Itoa(len(exons)),
		sizes.String(),
		starts.String(),
	)
}

// strandSymbol renders a +1/-1 strand as the BED "+"/"-" field.
func strandSymbol(strand int8) string {
	if strand == -1 {
		return "-"
	}
	return "+"
}
