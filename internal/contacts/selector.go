package contacts

import (
	"strings"

	"github.com/dialsheet/dialsheet/internal/phone"
)

// DefaultMobileLabels are the label keywords that mark a phone slot as a
// mobile device. "movil" covers the unaccented spelling seen in exports.
var DefaultMobileLabels = []string{"mobile", "cell", "móvil", "movil"}

// Selector picks the single best number for a contact with several phone
// slots. An explicit mobile label is a stronger signal than field order, so
// a mobile-labelled slot short-circuits the scan.
type Selector struct {
	norm     *phone.Normalizer
	keywords []string
}

// NewSelector builds a Selector around norm. Empty mobileLabels fall back
// to DefaultMobileLabels.
func NewSelector(norm *phone.Normalizer, mobileLabels []string) *Selector {
	if len(mobileLabels) == 0 {
		mobileLabels = DefaultMobileLabels
	}
	keywords := make([]string, len(mobileLabels))
	for i, kw := range mobileLabels {
		keywords[i] = strings.ToLower(kw)
	}
	return &Selector{norm: norm, keywords: keywords}
}

// Best scans rec's fields in order and returns the first valid number from
// a mobile-labelled field, or failing that the first valid number overall.
// Fields that yield nothing are skipped silently; ok is false when no field
// resolves at all.
func (s *Selector) Best(rec Record) (e164 string, country phone.CountryTag, ok bool) {
	var fallback string
	for _, f := range rec.Fields {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		nums := s.norm.Extract(f.Value)
		if len(nums) == 0 {
			continue
		}
		if s.mobileLabel(f.Label) {
			return nums[0], phone.Country(nums[0]), true
		}
		if fallback == "" {
			fallback = nums[0]
		}
	}
	if fallback == "" {
		return "", phone.CountryUnknown, false
	}
	return fallback, phone.Country(fallback), true
}

func (s *Selector) mobileLabel(label string) bool {
	if label == "" {
		return false
	}
	label = strings.ToLower(label)
	for _, kw := range s.keywords {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}
