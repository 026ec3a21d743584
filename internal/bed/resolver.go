// Package bed converts genomic features and transcripts into BED records.
package bed

import "github.com/ousamg/gene2bed/internal/feature"

// NameCache memoizes resolved display names keyed by raw region name.
// It is owned by the caller, typically one per output run, and is not safe
// for concurrent mutation; parallel callers must partition one cache per
// worker or serialize access themselves.
type NameCache map[string]string

// ResolveName returns the display name for a feature's sequence region,
// following UCSC naming conventions:
//
//   - a UCSC synonym, when the region's lookup service knows one
//   - "chrM" for a chromosome named "MT"
//   - "chr" + name for reference chromosomes backed by a lookup service
//   - the raw region name otherwise
//
// The result is memoized in cache; a cache hit returns the stored name with
// no re-derivation. Entries are insert-only and never overwritten.
func ResolveName(f *feature.Feature, cache NameCache) string {
	if name, ok := cache[f.Chrom]; ok {
		return name
	}

	name := displayName(f)
	cache[f.Chrom] = name
	return name
}

// displayName derives the region display name without consulting the cache.
func displayName(f *feature.Feature) string {
	slice := f.Slice
	if slice == nil {
		return f.Chrom
	}

	if synonyms := slice.UCSCSynonyms(); len(synonyms) > 0 {
		return synonyms[0].Name
	}

	if slice.Chromosome {
		if f.Chrom == "MT" {
			return "chrM"
		}
		if slice.Source != nil && slice.Reference {
			return "chr" + f.Chrom
		}
	}

	return f.Chrom
}
