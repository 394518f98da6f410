// Package phone recovers and normalizes phone numbers from messy contact
// exports: several numbers glued into one field, mixed international
// prefixes, stray punctuation, inconsistent separators. The pipeline is
// Tokenize → Candidates → Normalize → Country; each stage is usable on its
// own.
package phone

import (
	"errors"
	"strings"
)

// ErrInvalidNumber is returned when a candidate cannot be mapped to a
// plausible E.164 number: too short, or too long on the authoritative
// '+'-prefixed path where truncation would be a guess.
var ErrInvalidNumber = errors.New("invalid phone number")

// Options configures a Normalizer. The zero value is usable: bare 10-digit
// numbers default to +1 and no Mexico mobile digit is inserted.
type Options struct {
	// DefaultCountryCode is prepended to bare 10-digit numbers. A missing
	// leading '+' is tolerated. Empty means "+1".
	DefaultCountryCode string

	// MXMobileOne inserts the legacy mobile-routing '1' after Mexico's 52
	// country code when exactly 10 national digits follow. Some WhatsApp
	// carrier setups still require the 521 form.
	MXMobileOne bool
}

// Normalizer converts raw phone candidates to canonical E.164 form.
type Normalizer struct {
	defaultCC   string
	mxMobileOne bool
}

// NewNormalizer builds a Normalizer from opts. The returned value is
// immutable, so separate batches with different policies never interfere.
func NewNormalizer(opts Options) *Normalizer {
	cc := opts.DefaultCountryCode
	if cc == "" {
		cc = "+1"
	}
	if !strings.HasPrefix(cc, "+") {
		cc = "+" + cc
	}
	return &Normalizer{defaultCC: cc, mxMobileOne: opts.MXMobileOne}
}

// Normalize maps one candidate to E.164 form or fails with ErrInvalidNumber.
// The '+'-prefixed path is authoritative (the source marked the number
// international); bare digits are last-resort guesses, biased toward the
// default country for 10-digit inputs. Normalizing an already-normalized
// number returns it unchanged.
func (n *Normalizer) Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrInvalidNumber
	}

	if strings.HasPrefix(s, "+") {
		d := onlyDigits(s)
		if len(d) < 8 || len(d) > 15 {
			return "", ErrInvalidNumber
		}
		return "+" + n.mx521(d), nil
	}

	d := onlyDigits(s)
	switch {
	case len(d) == 11 && d[0] == '1':
		return "+1" + d[1:], nil
	case len(d) == 10:
		return n.defaultCC + d, nil
	case strings.HasPrefix(d, "52") && (len(d) == 12 || len(d) == 13):
		return "+" + n.mx521(d), nil
	case len(d) >= 8:
		// Generic international. Keep the leading digits when truncating:
		// they carry the country and area identity.
		if len(d) > 15 {
			d = d[:15]
		}
		return "+" + d, nil
	}
	return "", ErrInvalidNumber
}

// mx521 applies the Mexico mobile disambiguator: a '1' inserted after the 52
// country code when exactly 10 national digits follow and the number is not
// already in 521 form.
func (n *Normalizer) mx521(d string) string {
	if !n.mxMobileOne {
		return d
	}
	if len(d) == 12 && strings.HasPrefix(d, "52") && !strings.HasPrefix(d, "521") {
		return "521" + d[2:]
	}
	return d
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
