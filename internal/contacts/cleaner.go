package contacts

// Stats counts what happened to each record of one batch.
type Stats struct {
	Records    int // total records processed
	Resolved   int // rows emitted
	Duplicates int // dropped, number already seen earlier in the batch
	Dropped    int // dropped, no field yielded a usable number
}

// Cleaner runs the per-batch pipeline: select the best number per record,
// tag its country, deduplicate across the batch. No failure aborts a batch;
// unusable records are counted and skipped.
type Cleaner struct {
	sel            *Selector
	defaultChannel string
}

// NewCleaner builds a Cleaner. defaultChannel fills rows whose record
// carries no channel hint of its own.
func NewCleaner(sel *Selector, defaultChannel string) *Cleaner {
	return &Cleaner{sel: sel, defaultChannel: defaultChannel}
}

// Run is one cleaning pass over a batch, with its own seen-set. Feed
// records through Add and read the tallies from Stats when done.
type Run struct {
	cleaner *Cleaner
	dedupe  *Deduper
	stats   Stats
}

// Start opens a fresh pass. Consecutive passes never interfere.
func (c *Cleaner) Start() *Run {
	return &Run{cleaner: c, dedupe: NewDeduper()}
}

// Add processes one record. ok is false when the record was dropped or
// was a duplicate of an earlier one; the tallies record which.
func (r *Run) Add(rec Record) (Row, bool) {
	r.stats.Records++
	e164, country, ok := r.cleaner.sel.Best(rec)
	if !ok {
		r.stats.Dropped++
		return Row{}, false
	}
	if r.dedupe.Seen(e164) {
		r.stats.Duplicates++
		return Row{}, false
	}
	channel := rec.Channel
	if channel == "" {
		channel = r.cleaner.defaultChannel
	}
	r.stats.Resolved++
	return Row{
		Name:    rec.Name,
		Phone:   e164,
		Country: string(country),
		Channel: channel,
		OptIn:   rec.OptIn,
	}, true
}

// Stats returns the tallies so far.
func (r *Run) Stats() Stats {
	return r.stats
}

// Clean processes records in input order, preserving it in the output.
func (c *Cleaner) Clean(records []Record) ([]Row, Stats) {
	run := c.Start()
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if row, ok := run.Add(rec); ok {
			rows = append(rows, row)
		}
	}
	return rows, run.Stats()
}
