package contacts

// Deduper tracks normalized numbers within one batch run. First occurrence
// wins; later rows with the same number are dropped whole, never merged.
// Matching is exact string equality on the E.164 form, so +52 and +521
// variants of the same subscriber stay distinct unless normalization
// already collapsed them.
type Deduper struct {
	seen map[string]struct{}
}

// NewDeduper returns an empty Deduper. Use one per batch; the seen-set is
// never persisted.
func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]struct{})}
}

// Seen records e164 and reports whether it was already present.
func (d *Deduper) Seen(e164 string) bool {
	if _, ok := d.seen[e164]; ok {
		return true
	}
	d.seen[e164] = struct{}{}
	return false
}

// Len reports how many distinct numbers have been recorded.
func (d *Deduper) Len() int { return len(d.seen) }
