package phone

import (
	"regexp"
	"testing"

	"github.com/dialsheet/dialsheet/internal/testutil"
)

// --- Candidate scanning ---

func TestCandidates_ExplicitPlus(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{})
	cands := n.Candidates("+18173070515")
	testutil.SliceLen(t, cands, 1)
	testutil.Equal(t, "18173070515", cands[0].Digits)
	testutil.True(t, cands[0].Plus, "explicit '+' should mark the candidate international")
}

func TestCandidates_PlusOutranksWindowWithSameDigits(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{})
	// Rule 1 and the 11-digit window find the same digits; the first-seen
	// candidate keeps the international marker.
	cands := n.Candidates("+12145551212")
	testutil.SliceLen(t, cands, 1)
	testutil.True(t, cands[0].Plus, "dedupe should keep the rule-1 candidate")
}

func TestCandidates_CountryWindows(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{})
	cases := []struct {
		token, digits string
	}{
		{"2145551212", "2145551212"},
		{"12145551212", "12145551212"},
		{"525512345678", "525512345678"},
		{"5215512345678", "5215512345678"},
	}
	for _, c := range cases {
		cands := n.Candidates(c.token)
		testutil.SliceLen(t, cands, 1)
		testutil.Equal(t, c.digits, cands[0].Digits)
		testutil.False(t, cands[0].Plus, "window candidates carry no international marker")
	}
}

func TestCandidates_GluedPlusPair(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{})
	// "+18173070515" and "8175648524" concatenated with no separator. The
	// sliding windows must surface at least two distinct US-shaped numbers
	// hidden in the glue.
	cands := n.Candidates("+181730705158175648524")

	var windows []string
	for _, c := range cands {
		if !c.Plus && len(c.Digits) == 11 && c.Digits[0] == '1' {
			windows = append(windows, c.Digits)
		}
	}
	testutil.True(t, len(windows) >= 2, "want at least two 11-digit windows, got %v", windows)
	testutil.Equal(t, "18173070515", windows[0])

	// The greedy '+' match is still first: priority order is preserved.
	testutil.True(t, cands[0].Plus, "rule-1 candidate should come first")
	testutil.Equal(t, "181730705158175", cands[0].Digits)
}

// --- Full field extraction ---

func TestExtract_GluedRecovery(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{})
	nums := n.Extract("+181730705158175648524")

	us11 := regexp.MustCompile(`^\+1\d{10}$`)
	count, found := 0, false
	for _, num := range nums {
		if us11.MatchString(num) {
			count++
		}
		if num == "+18173070515" {
			found = true
		}
	}
	testutil.True(t, count >= 2, "want at least two +1 numbers, got %v", nums)
	testutil.True(t, found, "want the leading glued number recovered intact, got %v", nums)
}

func TestExtract_TwoCleanGluedNumbers(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{})
	// Two 1+10 US numbers back to back, no interior decoys.
	nums := n.Extract("1202555073412485550992")
	testutil.SliceLen(t, nums, 3)
	testutil.Equal(t, "+12025550734", nums[0])
	testutil.Equal(t, "+12485550992", nums[1])
	// The whole-token fallback contributes the truncated remainder last.
	testutil.Equal(t, "+120255507341248", nums[2])
}

func TestExtract_SeparatedFormats(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{})
	cases := []struct {
		field, want string
	}{
		{"(214) 555-1212", "+12145551212"},
		{"214.555.1212", "+12145551212"},
		{"1-214-555-1212", "+12145551212"},
		{"52 55 1234 5678", "+525512345678"},
		{"(52) 55 1234 5678", "+525512345678"},
	}
	for _, c := range cases {
		nums := n.Extract(c.field)
		testutil.SliceLen(t, nums, 1)
		testutil.Equal(t, c.want, nums[0])
	}
}

func TestExtract_WholeFieldFallback(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{})
	// Separators cut the number's own digits apart; no token yields a
	// candidate, so the whole field gets one last pass.
	nums := n.Extract("214,555,1212")
	testutil.SliceLen(t, nums, 1)
	testutil.Equal(t, "+12145551212", nums[0])
}

func TestExtract_MultiplePlusNumbers(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{})
	nums := n.Extract("+18173070515+525512345678")
	testutil.SliceLen(t, nums, 2)
	testutil.Equal(t, "+18173070515", nums[0])
	testutil.Equal(t, "+525512345678", nums[1])
}

func TestExtract_ListsBothNumbersFromOneField(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{})
	nums := n.Extract("214-555-1212 ::: 817-307-0515")
	testutil.SliceLen(t, nums, 2)
	testutil.Equal(t, "+12145551212", nums[0])
	testutil.Equal(t, "+18173070515", nums[1])
}

func TestExtract_SpacedMXMobileForm(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{})
	// The 13-digit mobile form, split by spaces. The sliding windows also
	// see a 12-digit "52" reading inside it; the full form must come first.
	nums := n.Extract("+52 1 55 1234 5678")
	testutil.True(t, len(nums) >= 1, "want candidates, got none")
	testutil.Equal(t, "+5215512345678", nums[0])
}

func TestExtract_MX521Flag(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{MXMobileOne: true})
	nums := n.Extract("52 55 1234 5678")
	testutil.SliceLen(t, nums, 1)
	testutil.Equal(t, "+5215512345678", nums[0])
}

func TestExtract_NothingUsable(t *testing.T) {
	t.Parallel()
	n := NewNormalizer(Options{})
	for _, field := range []string{"", "N/A", "none", "ask reception", "ext. 44"} {
		testutil.SliceLen(t, n.Extract(field), 0)
	}
}
