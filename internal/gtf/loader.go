// Package gtf loads transcript models from GENCODE/Ensembl GTF files.
package gtf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ousamg/gene2bed/internal/feature"
)

// Loader loads transcript data from a GTF file.
type Loader struct {
	path    string
	aliases feature.SynonymSource
	logger  *zap.Logger
}

// NewLoader creates a new GTF loader.
func NewLoader(path string) *Loader {
	return &Loader{path: path, logger: zap.NewNop()}
}

// SetSynonymSource attaches a region synonym lookup service. Slices built by
// the loader carry it so name resolution can consult UCSC synonyms.
func (l *Loader) SetSynonymSource(src feature.SynonymSource) {
	l.aliases = src
}

// SetLogger sets the logger for progress messages.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// Load parses the GTF file and returns the transcripts it describes.
func (l *Loader) Load() (*feature.Set, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open GTF file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f

	// Handle gzipped files
	if strings.HasSuffix(l.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	set, err := l.parse(reader)
	if err != nil {
		return nil, err
	}

	l.logger.Info("GTF loaded",
		zap.String("path", l.path),
		zap.Int("transcripts", set.Count()))

	return set, nil
}

// gtfLine represents a parsed GTF record.
type gtfLine struct {
	chrom       string
	featureType string
	start       int64
	end         int64
	strand      string
	attributes  map[string]string
}

// parse reads GTF content and assembles transcripts with exon structure and
// spliced coding bounds.
func (l *Loader) parse(reader io.Reader) (*feature.Set, error) {
	scanner := bufio.NewScanner(reader)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	transcripts := make(map[string]*feature.Transcript)
	var order []string
	exonsByTranscript := make(map[string][]feature.Exon)
	cdsByTranscript := make(map[string][][2]int64) // genomic start, end pairs
	slices := make(map[string]*feature.Slice)

	for scanner.Scan() {
		line := scanner.Text()

		// Skip comments and empty lines
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		rec, err := parseLine(line)
		if err != nil {
			continue // Skip malformed lines
		}

		transcriptID := rec.attributes["transcript_id"]
		if transcriptID == "" {
			continue
		}
		transcriptID = stripVersion(transcriptID)

		switch rec.featureType {
		case "transcript":
			t := &feature.Transcript{
				Feature: feature.Feature{
					ID:     transcriptID,
					Chrom:  rec.chrom,
					Start:  rec.start,
					End:    rec.end,
					Strand: parseStrand(rec.strand),
					Slice:  l.sliceFor(rec.chrom, slices),
				},
				GeneID:   stripVersion(rec.attributes["gene_id"]),
				GeneName: rec.attributes["gene_name"],
				Biotype:  rec.attributes["transcript_type"],
			}
			transcripts[transcriptID] = t
			order = append(order, transcriptID)

		case "exon":
			exonNum, _ := strconv.Atoi(rec.attributes["exon_number"])
			exonsByTranscript[transcriptID] = append(exonsByTranscript[transcriptID], feature.Exon{
				Number: exonNum,
				Start:  rec.start,
				End:    rec.end,
			})

		case "CDS":
			cdsByTranscript[transcriptID] = append(cdsByTranscript[transcriptID], [2]int64{rec.start, rec.end})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}

	set := feature.NewSet()
	for _, id := range order {
		t := transcripts[id]
		t.Exons = exonsByTranscript[id]

		if cds := cdsByTranscript[id]; len(cds) > 0 {
			setCodingBounds(t, cds)
		}

		set.Add(t)
	}

	return set, nil
}

// setCodingBounds derives the transcript's spliced coding bounds from the
// genomic extremes of its CDS records. The spliced coding start is the CDS
// base nearest the transcript 5' end, which is the genomic minimum on the
// forward strand and the genomic maximum on the reverse strand.
func setCodingBounds(t *feature.Transcript, cds [][2]int64) {
	minStart := cds[0][0]
	maxEnd := cds[0][1]
	for _, region := range cds[1:] {
		if region[0] < minStart {
			minStart = region[0]
		}
		if region[1] > maxEnd {
			maxEnd = region[1]
		}
	}

	if t.IsForwardStrand() {
		t.CDNACodingStart = t.GenomicToCDNA(minStart)
		t.CDNACodingEnd = t.GenomicToCDNA(maxEnd)
	} else {
		t.CDNACodingStart = t.GenomicToCDNA(maxEnd)
		t.CDNACodingEnd = t.GenomicToCDNA(minStart)
	}
}

// sliceFor returns the slice for a region, creating and memoizing it on
// first sight.
func (l *Loader) sliceFor(chrom string, slices map[string]*feature.Slice) *feature.Slice {
	if s, ok := slices[chrom]; ok {
		return s
	}
	s := &feature.Slice{
		Name:       chrom,
		Start:      1,
		Chromosome: isChromosomeName(chrom),
		Reference:  isChromosomeName(chrom),
		Source:     l.aliases,
	}
	slices[chrom] = s
	return s
}

// isChromosomeName reports whether a region name denotes an assembled
// chromosome (1-22, X, Y, MT) rather than a scaffold or patch.
func isChromosomeName(name string) bool {
	switch name {
	case "X", "Y", "MT":
		return true
	}
	n, err := strconv.Atoi(name)
	return err == nil && n >= 1 && n <= 22
}

// parseLine parses a single GTF line.
func parseLine(line string) (*gtfLine, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, fmt.Errorf("invalid GTF line: expected 9 fields, got %d", len(fields))
	}

	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}

	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}

	return &gtfLine{
		chrom:       normalizeChrom(fields[0]),
		featureType: fields[2],
		start:       start,
		end:         end,
		strand:      fields[6],
		attributes:  parseAttributes(fields[8]),
	}, nil
}

// parseAttributes parses the GTF attribute column.
// Format: key "value"; key "value"; ...
func parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.Index(part, " ")
		if idx == -1 {
			continue
		}

		key := part[:idx]
		value := strings.Trim(strings.TrimSpace(part[idx+1:]), "\"")
		attrs[key] = value
	}

	return attrs
}

// parseStrand converts a GTF strand column to int8.
func parseStrand(s string) int8 {
	if s == "-" {
		return -1
	}
	return 1
}

// stripVersion removes the version suffix from an Ensembl ID.
// e.g., "ENST00000456328.2" -> "ENST00000456328"
func stripVersion(id string) string {
	if idx := strings.LastIndex(id, "."); idx != -1 {
		return id[:idx]
	}
	return id
}

// normalizeChrom removes the "chr" prefix so raw region names are stored in
// Ensembl style regardless of whether the GTF came from GENCODE or Ensembl.
func normalizeChrom(chrom string) string {
	if strings.HasPrefix(chrom, "chr") {
		name := chrom[3:]
		if name == "M" {
			return "MT"
		}
		return name
	}
	return chrom
}
