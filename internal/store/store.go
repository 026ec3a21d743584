// Package store persists transcript models in DuckDB so repeated exports do
// not re-parse annotation files.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/ousamg/gene2bed/internal/feature"
)

// Store manages a DuckDB connection holding indexed transcripts.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS transcripts (
		id VARCHAR,
		gene_id VARCHAR,
		gene_name VARCHAR,
		chrom VARCHAR,
		start BIGINT,
		"end" BIGINT,
		strand TINYINT,
		biotype VARCHAR,
		cdna_coding_start BIGINT,
		cdna_coding_end BIGINT,
		is_chromosome BOOLEAN,
		is_reference BOOLEAN,
		seq BIGINT,
		PRIMARY KEY (id)
	)`); err != nil {
		return err
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS exons (
		transcript_id VARCHAR,
		number INTEGER,
		start BIGINT,
		"end" BIGINT,
		PRIMARY KEY (transcript_id, number, start)
	)`)
	return err
}

// PutSet batch-inserts every transcript of a set using the Appender API.
// Existing rows are cleared first; the store holds exactly one indexed set.
func (s *Store) PutSet(set *feature.Set) error {
	if _, err := s.db.Exec("DELETE FROM transcripts"); err != nil {
		return fmt.Errorf("clear transcripts: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM exons"); err != nil {
		return fmt.Errorf("clear exons: %w", err)
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	appender, err := newAppender(conn, "transcripts")
	if err != nil {
		return err
	}
	exonAppender, err := newAppender(conn, "exons")
	if err != nil {
		appender.Close()
		return err
	}

	seq := int64(0)
	for _, chrom := range set.Chromosomes() {
		for _, t := range set.ByChrom(chrom) {
			isChrom, isRef := false, false
			if t.Slice != nil {
				isChrom, isRef = t.Slice.Chromosome, t.Slice.Reference
			}
			if err := appender.AppendRow(
				t.ID, t.GeneID, t.GeneName, t.Chrom,
				t.Start, t.End, t.Strand, t.Biotype,
				t.CDNACodingStart, t.CDNACodingEnd,
				isChrom, isRef, seq,
			); err != nil {
				appender.Close()
				exonAppender.Close()
				return fmt.Errorf("append transcript %s: %w", t.ID, err)
			}
			seq++

			for _, e := range t.Exons {
				if err := exonAppender.AppendRow(t.ID, int32(e.Number), e.Start, e.End); err != nil {
					appender.Close()
					exonAppender.Close()
					return fmt.Errorf("append exon for %s: %w", t.ID, err)
				}
			}
		}
	}

	if err := appender.Close(); err != nil {
		exonAppender.Close()
		return fmt.Errorf("flush transcripts: %w", err)
	}
	if err := exonAppender.Close(); err != nil {
		return fmt.Errorf("flush exons: %w", err)
	}
	return nil
}

// newAppender creates a DuckDB appender bound to a pooled connection.
func newAppender(conn *sql.Conn, table string) (*goduckdb.Appender, error) {
	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		return nil, fmt.Errorf("create %s appender: %w", table, err)
	}
	return appender, nil
}

// LoadSet reads all indexed transcripts back into a set, preserving the
// order they were indexed in. Slices are rebuilt from the stored
// classification flags; synonym sources are not persisted and can be
// reattached with AttachSynonymSource.
func (s *Store) LoadSet() (*feature.Set, error) {
	exons, err := s.loadExons()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT
		id, gene_id, gene_name, chrom, start, "end", strand, biotype,
		cdna_coding_start, cdna_coding_end, is_chromosome, is_reference
		FROM transcripts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query transcripts: %w", err)
	}
	defer rows.Close()

	set := feature.NewSet()
	slices := make(map[string]*feature.Slice)

	for rows.Next() {
		var t feature.Transcript
		var isChrom, isRef bool
		if err := rows.Scan(
			&t.ID, &t.GeneID, &t.GeneName, &t.Chrom,
			&t.Start, &t.End, &t.Strand, &t.Biotype,
			&t.CDNACodingStart, &t.CDNACodingEnd,
			&isChrom, &isRef,
		); err != nil {
			return nil, fmt.Errorf("scan transcript: %w", err)
		}

		slice, ok := slices[t.Chrom]
		if !ok {
			slice = &feature.Slice{
				Name:       t.Chrom,
				Start:      1,
				Chromosome: isChrom,
				Reference:  isRef,
			}
			slices[t.Chrom] = slice
		}
		t.Slice = slice
		t.Exons = exons[t.ID]

		set.Add(&t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcripts: %w", err)
	}

	return set, nil
}

// AttachSynonymSource attaches a synonym lookup service to every slice of a
// loaded set.
func AttachSynonymSource(set *feature.Set, src feature.SynonymSource) {
	seen := make(map[*feature.Slice]bool)
	for _, chrom := range set.Chromosomes() {
		for _, t := range set.ByChrom(chrom) {
			if t.Slice != nil && !seen[t.Slice] {
				t.Slice.Source = src
				seen[t.Slice] = true
			}
		}
	}
}

// loadExons reads all exons grouped by transcript ID.
func (s *Store) loadExons() (map[string][]feature.Exon, error) {
	rows, err := s.db.Query(`SELECT transcript_id, number, start, "end" FROM exons ORDER BY transcript_id, number`)
	if err != nil {
		return nil, fmt.Errorf("query exons: %w", err)
	}
	defer rows.Close()

	exons := make(map[string][]feature.Exon)
	for rows.Next() {
		var id string
		var e feature.Exon
		if err := rows.Scan(&id, &e.Number, &e.Start, &e.End); err != nil {
			return nil, fmt.Errorf("scan exon: %w", err)
		}
		exons[id] = append(exons[id], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exons: %w", err)
	}
	return exons, nil
}

// TranscriptCount returns the number of indexed transcripts.
func (s *Store) TranscriptCount() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM transcripts").Scan(&count); err != nil {
		return 0, fmt.Errorf("count transcripts: %w", err)
	}
	return count, nil
}
