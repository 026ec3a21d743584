package gtf

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ousamg/gene2bed/internal/feature"
)

// AliasRegistry maps raw region names to their synonyms in other naming
// schemes. It implements feature.SynonymSource.
type AliasRegistry struct {
	synonyms map[string][]feature.Synonym
}

// NewAliasRegistry creates an empty registry.
func NewAliasRegistry() *AliasRegistry {
	return &AliasRegistry{synonyms: make(map[string][]feature.Synonym)}
}

// Add registers a synonym for a region.
func (r *AliasRegistry) Add(region, name, authority string) {
	r.synonyms[region] = append(r.synonyms[region], feature.Synonym{
		Name:      name,
		Authority: authority,
	})
}

// Synonyms returns the region's synonyms for a naming authority.
func (r *AliasRegistry) Synonyms(region, authority string) []feature.Synonym {
	var matches []feature.Synonym
	for _, syn := range r.synonyms[region] {
		if syn.Authority == authority {
			matches = append(matches, syn)
		}
	}
	return matches
}

// LoadAliasFile reads a UCSC chromAlias file into a registry. Each data line
// carries an alias, the UCSC sequence name, and the naming schemes the alias
// comes from, tab-separated:
//
//	1	chr1	ensembl,genbank
//
// The UCSC name is registered as a "UCSC"-authority synonym of the alias.
func LoadAliasFile(path string) (*AliasRegistry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open alias file: %w", err)
	}
	defer f.Close()

	registry := NewAliasRegistry()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}

		alias := fields[0]
		ucscName := fields[1]
		if alias == "" || ucscName == "" {
			continue
		}

		registry.Add(alias, ucscName, "UCSC")
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan alias file: %w", err)
	}

	return registry, nil
}
