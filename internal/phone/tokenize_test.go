package phone

import (
	"testing"

	"github.com/dialsheet/dialsheet/internal/testutil"
)

func TestTokenize_Separators(t *testing.T) {
	t.Parallel()
	cases := []struct {
		field string
		want  []string
	}{
		{"2145551212", []string{"2145551212"}},
		{"214-555-1212, 817-555-0123", []string{"214-555-1212", "817-555-0123"}},
		{"111|222/333;444", []string{"111", "222", "333", "444"}},
		{"111:::222", []string{"111", "222"}},
		{"111\t222", []string{"111", "222"}},
		{"111  222", []string{"111", "222"}},
		{"home: 2145551212", []string{"home", "2145551212"}},
	}
	for _, c := range cases {
		got := Tokenize(c.field)
		if len(got) != len(c.want) {
			t.Errorf("Tokenize(%q): got %v, want %v", c.field, got, c.want)
			continue
		}
		for i := range got {
			testutil.Equal(t, c.want[i], got[i])
		}
	}
}

func TestTokenize_SingleSpaceIsNotASeparator(t *testing.T) {
	t.Parallel()
	got := Tokenize("52 55 1234 5678")
	testutil.SliceLen(t, got, 1)
	testutil.Equal(t, "52 55 1234 5678", got[0])
}

func TestTokenize_SplitsAtPlusWhenSeveral(t *testing.T) {
	t.Parallel()
	got := Tokenize("+18173070515+5215512345678")
	testutil.SliceLen(t, got, 2)
	testutil.Equal(t, "+18173070515", got[0])
	testutil.Equal(t, "+5215512345678", got[1])

	// One '+' never triggers the extra cut.
	got = Tokenize("+1 817 307 0515")
	testutil.SliceLen(t, got, 1)
	testutil.Equal(t, "+1 817 307 0515", got[0])
}

func TestTokenize_PlusSplitInsideSeparatedField(t *testing.T) {
	t.Parallel()
	got := Tokenize("+18173070515 +525512345678, 2145551212")
	testutil.SliceLen(t, got, 3)
	testutil.Equal(t, "+18173070515", got[0])
	testutil.Equal(t, "+525512345678", got[1])
	testutil.Equal(t, "2145551212", got[2])
}

func TestTokenize_Blank(t *testing.T) {
	t.Parallel()
	testutil.SliceLen(t, Tokenize(""), 0)
	testutil.SliceLen(t, Tokenize("   "), 0)
	testutil.SliceLen(t, Tokenize("\t"), 0)
}
