package phone

import (
	"regexp"
	"strings"
)

// Explicit international form anywhere in a token.
var plusRE = regexp.MustCompile(`\+\d{8,15}`)

// Maximal digit runs. Run length stands in for digit-boundary lookarounds,
// which RE2 does not support: an 11-digit window inside a 21-digit glue is
// not a run, so it cannot false-match here.
var digitRunRE = regexp.MustCompile(`\d+`)

// Candidate is an unvalidated digit sequence suspected of being a phone
// number, with a flag recording whether the source marked it international.
type Candidate struct {
	Digits string
	Plus   bool
}

// String renders the candidate the way Normalize expects it.
func (c Candidate) String() string {
	if c.Plus {
		return "+" + c.Digits
	}
	return c.Digits
}

// Candidates scans one token for phone-shaped digit windows. The rules are
// layered in priority order and unioned, so several numbers hidden in one
// token all surface:
//
//  1. '+' followed by 8–15 digits, anywhere in the token.
//  2. Fixed-width country forms on each maximal digit run: US 10 or 1+10,
//     MX 52+10 or 521+10.
//  3. When the token carries more than 15 digits in total (glued numbers) or
//     rules 1–2 found nothing: sliding windows over the concatenated digits.
//  4. The whole token as a single number, when it normalizes.
//
// Candidates are deduplicated by digit string, first seen wins, so a rule-1
// hit keeps its international marker over a later window with the same
// digits.
func (n *Normalizer) Candidates(token string) []Candidate {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	var cands []Candidate

	for _, m := range plusRE.FindAllString(token, -1) {
		cands = append(cands, Candidate{Digits: m[1:], Plus: true})
	}

	runs := digitRunRE.FindAllString(token, -1)
	for _, run := range runs {
		if countryWindow(run) {
			cands = append(cands, Candidate{Digits: run})
		}
	}

	all := strings.Join(runs, "")
	if len(all) > 15 || len(cands) == 0 {
		for _, w := range slideWindows(all) {
			cands = append(cands, Candidate{Digits: w})
		}
	}

	if all != "" {
		whole := Candidate{Digits: all, Plus: strings.HasPrefix(token, "+")}
		if _, err := n.Normalize(whole.String()); err == nil {
			cands = append(cands, whole)
		}
	}

	return uniqueCandidates(cands)
}

// Extract runs the full recovery pipeline over one raw field: tokenize,
// collect candidates per token, normalize each, and return the unique E.164
// numbers in first-seen order. When no token yields a candidate the whole
// field gets one last pass, which recovers numbers whose own digits were cut
// apart by separators ("214,555,1212").
func (n *Normalizer) Extract(field string) []string {
	var cands []Candidate
	for _, tok := range Tokenize(field) {
		cands = append(cands, n.Candidates(tok)...)
	}
	if len(cands) == 0 {
		cands = n.Candidates(field)
	}

	seen := make(map[string]struct{}, len(cands))
	var nums []string
	for _, c := range cands {
		e164, err := n.Normalize(c.String())
		if err != nil {
			continue
		}
		if _, ok := seen[e164]; ok {
			continue
		}
		seen[e164] = struct{}{}
		nums = append(nums, e164)
	}
	return nums
}

// countryWindow reports whether a maximal digit run is a known fixed-width
// national form.
func countryWindow(run string) bool {
	switch len(run) {
	case 10:
		return true
	case 11:
		return run[0] == '1'
	case 12:
		return strings.HasPrefix(run, "52")
	case 13:
		return strings.HasPrefix(run, "521")
	}
	return false
}

// slideWindows tests fixed-width windows at every offset of a glued digit
// string: length 13 starting 521 (MX mobile form), 12 starting 52 (MX), 11
// starting '1' (US). Overlapping hits are all kept; the heuristic has no
// way to tell which overlap is the real number, so none are discarded here.
// Longest window first at each offset, so a 13-digit 521 form precedes the
// 52 reading of its own first 12 digits.
func slideWindows(digits string) []string {
	var wins []string
	for i := 0; i < len(digits); i++ {
		if i+13 <= len(digits) && strings.HasPrefix(digits[i:], "521") {
			wins = append(wins, digits[i:i+13])
		}
		if i+12 <= len(digits) && strings.HasPrefix(digits[i:], "52") {
			wins = append(wins, digits[i:i+12])
		}
		if i+11 <= len(digits) && digits[i] == '1' {
			wins = append(wins, digits[i:i+11])
		}
	}
	return wins
}

func uniqueCandidates(cands []Candidate) []Candidate {
	if len(cands) <= 1 {
		return cands
	}
	seen := make(map[string]struct{}, len(cands))
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if _, ok := seen[c.Digits]; ok {
			continue
		}
		seen[c.Digits] = struct{}{}
		out = append(out, c)
	}
	return out
}
