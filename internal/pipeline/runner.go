package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/dialsheet/dialsheet/internal/contactio"
	"github.com/dialsheet/dialsheet/internal/contacts"
)

const phaseCount = 3

// Runner drives one clean run: read, clean, write.
type Runner struct {
	cleaner  *contacts.Cleaner
	progress ProgressReporter
	logger   *slog.Logger

	// InputFormat forces the reader's table format ("csv", "tsv", "xlsx")
	// for exports with a wrong or missing extension. Empty means sniff.
	InputFormat string
}

// NewRunner builds a Runner. A nil progress reporter discards updates and a
// nil logger falls back to slog.Default().
func NewRunner(cleaner *contacts.Cleaner, progress ProgressReporter, logger *slog.Logger) *Runner {
	if progress == nil {
		progress = NopReporter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cleaner: cleaner, progress: progress, logger: logger}
}

// Result summarizes one clean run.
type Result struct {
	Schema    contactio.Schema
	Rows      []contacts.Row
	Stats     contacts.Stats
	Countries map[string]int // country tag → resolved row count
	Elapsed   time.Duration
}

// Clean reads the export at inPath, recovers one number per contact, and
// writes the cleaned list to outPath. Unusable and duplicate records are
// counted, never fatal; only I/O and an unrecognized layout abort the run.
func (r *Runner) Clean(ctx context.Context, inPath, outPath string) (*Result, error) {
	started := time.Now()

	phase := Phase{Name: "Read", Index: 1, Total: phaseCount}
	phaseStart := time.Now()
	r.progress.StartPhase(phase, 0)
	records, schema, err := contactio.ReadRecordsFormat(inPath, r.InputFormat)
	if err != nil {
		return nil, err
	}
	r.progress.CompletePhase(phase, len(records), time.Since(phaseStart))
	r.logger.Info("export loaded", "path", inPath, "schema", string(schema), "records", len(records))

	phase = Phase{Name: "Clean", Index: 2, Total: phaseCount}
	phaseStart = time.Now()
	r.progress.StartPhase(phase, len(records))
	run := r.cleaner.Start()
	rows := make([]contacts.Row, 0, len(records))
	countries := make(map[string]int)
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline: clean: %w", err)
		}
		if row, ok := run.Add(rec); ok {
			rows = append(rows, row)
			countries[row.Country]++
		}
		r.progress.Progress(phase, i+1, len(records))
	}
	stats := run.Stats()
	r.progress.CompletePhase(phase, stats.Resolved, time.Since(phaseStart))

	phase = Phase{Name: "Write", Index: 3, Total: phaseCount}
	phaseStart = time.Now()
	r.progress.StartPhase(phase, len(rows))
	if err := contactio.WriteFile(outPath, rows, false); err != nil {
		return nil, err
	}
	r.progress.CompletePhase(phase, len(rows), time.Since(phaseStart))

	if stats.Dropped > 0 {
		r.progress.Warn(fmt.Sprintf("%d records had no usable number", stats.Dropped))
	}
	r.logger.Info("cleaned list written", "path", outPath,
		"resolved", stats.Resolved, "duplicates", stats.Duplicates, "dropped", stats.Dropped)

	return &Result{
		Schema:    schema,
		Rows:      rows,
		Stats:     stats,
		Countries: countries,
		Elapsed:   time.Since(started),
	}, nil
}

// PrintReport writes a formatted post-run summary to w.
func (res *Result) PrintReport(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Clean Report — %s\n", res.Schema.Label())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Records:    %d\n", res.Stats.Records)
	fmt.Fprintf(w, "  Resolved:   %d\n", res.Stats.Resolved)
	if res.Stats.Duplicates > 0 {
		fmt.Fprintf(w, "  Duplicates: %d\n", res.Stats.Duplicates)
	}
	if res.Stats.Dropped > 0 {
		fmt.Fprintf(w, "  Dropped:    %d\n", res.Stats.Dropped)
	}

	if len(res.Countries) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  By country:")
		tags := make([]string, 0, len(res.Countries))
		for tag := range res.Countries {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			fmt.Fprintf(w, "    %-8s %d\n", tag, res.Countries[tag])
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Done in %s.\n", formatDuration(res.Elapsed))
}
