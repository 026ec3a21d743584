package bed

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ousamg/gene2bed/internal/feature"
)

// TranscriptSource yields transcripts one at a time. Next returns nil with a
// nil error when the source is exhausted.
type TranscriptSource interface {
	Next() (*feature.Transcript, error)
}

// Exporter encodes features from a source and writes BED lines.
type Exporter struct {
	workers int
	logger  *zap.Logger
}

// NewExporter creates a new exporter.
func NewExporter() *Exporter {
	return &Exporter{logger: zap.NewNop()}
}

// SetWorkers configures the encoding worker count. 0 means one worker per CPU.
func (e *Exporter) SetWorkers(n int) {
	e.workers = n
}

// SetLogger sets the logger for progress and warning messages.
func (e *Exporter) SetLogger(l *zap.Logger) {
	e.logger = l
}

// ExportAll encodes every transcript from the source and writes one BED line
// per transcript, preserving source order.
func (e *Exporter) ExportAll(src TranscriptSource, w *Writer) error {
	items := make(chan WorkItem, 64)
	var readErr error
	count := 0

	go func() {
		defer close(items)
		seq := 0
		for {
			t, err := src.Next()
			if err != nil {
				readErr = fmt.Errorf("read transcript: %w", err)
				return
			}
			if t == nil {
				return
			}
			items <- WorkItem{Seq: seq, Interval: t}
			seq++
			count++
		}
	}()

	results := ParallelEncode(items, e.workers)

	if err := OrderedCollect(results, func(r WorkResult) error {
		if err := w.Write(r.Rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	if readErr != nil {
		return readErr
	}

	e.logger.Info("export complete", zap.Int("transcripts", count))

	return w.Flush()
}

// SetSource adapts a feature.Set into a TranscriptSource that yields
// transcripts chromosome by chromosome in sorted region order.
type SetSource struct {
	set    *feature.Set
	chroms []string
	ci     int
	ti     int
}

// NewSetSource creates a source over a transcript set.
func NewSetSource(set *feature.Set) *SetSource {
	return &SetSource{set: set, chroms: set.Chromosomes()}
}

// Next returns the next transcript, or nil when the set is exhausted.
func (s *SetSource) Next() (*feature.Transcript, error) {
	for s.ci < len(s.chroms) {
		transcripts := s.set.ByChrom(s.chroms[s.ci])
		if s.ti < len(transcripts) {
			t := transcripts[s.ti]
			s.ti++
			return t, nil
		}
		s.ci++
		s.ti = 0
	}
	return nil, nil
}
