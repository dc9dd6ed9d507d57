package report

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tablediff/internal/diff"
	"github.com/roach88/tablediff/internal/locale"
)

type emptyObject struct{}

// stubBuilder returns a builder that always yields (msg, ok), so Aligned can
// be tested without a real inner stage.
func stubBuilder(msg string, ok bool) Builder[emptyObject] {
	return BuilderFunc[emptyObject](func(*diff.Result[emptyObject]) (string, bool) {
		return msg, ok
	})
}

func degenerate(t *testing.T) *diff.Result[emptyObject] {
	t.Helper()
	r, err := diff.NewResult[emptyObject](nil, nil, nil)
	require.NoError(t, err)
	return r
}

func TestAligned_AbsentPassesThrough(t *testing.T) {
	msg, ok := NewAligned(stubBuilder("", false)).Render(degenerate(t))
	assert.False(t, ok)
	assert.Equal(t, "", msg)
}

func TestAligned_EmptyPassesThrough(t *testing.T) {
	msg, ok := NewAligned(stubBuilder("", true)).Render(degenerate(t))
	assert.True(t, ok)
	assert.Equal(t, "", msg)
}

func TestAligned_MakesColumnWidthsMatch(t *testing.T) {
	raw := "" +
		"| One | Two | Three |\n" +
		"| 1234567 | 1 | 1234567890 |\n" +
		"| 1| 2 | 3 |"

	msg, ok := NewAligned(stubBuilder(raw, true)).Render(degenerate(t))

	require.True(t, ok)
	assert.Equal(t, ""+
		"| One     | Two | Three      |\n"+
		"| 1234567 | 1   | 1234567890 |\n"+
		"| 1       | 2   | 3          |", msg)
}

func TestAligned_PreservesMarkersAndOrder(t *testing.T) {
	tbl := oneTwoThree(t,
		[]string{"testa", "1", "W"},
		[]string{"testb", "2", "X"},
	)
	extras := []testObject{
		{One: str("A"), Two: num(1), Three: str("Z")},
		{One: str("B1"), Two: num(1234567), Three: str("ZYXW")},
		{},
	}
	r, err := diff.NewResult(tbl, []int{1}, extras)
	require.NoError(t, err)

	msg, ok := NewAligned[testObject](NewBase[testObject]()).Render(r)
	require.True(t, ok)

	assert.Equal(t, ""+
		"  | One   | Two     | Three |\n"+
		"  | testa | 1       | W     |\n"+
		"- | testb | 2       | X     |\n"+
		"+ | A     | 1       | Z     |\n"+
		"+ | B1    | 1234567 | ZYXW  |\n"+
		"+ |       |         |       |\n", msg)
}

func TestAlign_Idempotent(t *testing.T) {
	raw := "  | One | Two |\n- | a | 1234567 |\n+ | bbbbbb | |\n"
	once := Align(raw)
	assert.Equal(t, once, Align(once))
}

func TestAlign_EveryLineSameColumns(t *testing.T) {
	raw := "  | One | Two | Three |\n+ | x |\n"
	out := Align(raw)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "  | One | Two | Three |", lines[0])
	assert.Equal(t, "+ | x   |     |       |", lines[1])
	assert.Equal(t, len(lines[0]), len(lines[1]))
}

func TestAlign_NonTableLinesUntouched(t *testing.T) {
	raw := "rows differ:\n  | a | bb |\n  | ccc | d |\n"
	assert.Equal(t, "rows differ:\n  | a   | bb |\n  | ccc | d  |\n", Align(raw))
}

func TestAlign_KeepsLeadingSpacesInCells(t *testing.T) {
	raw := "  | Name | Qty |\n- |  x | 1 |\n+ |   yy | 22 |\n"
	assert.Equal(t, ""+
		"  | Name | Qty |\n"+
		"- |  x   | 1   |\n"+
		"+ |   yy | 22  |\n", Align(raw))
}

func TestAligned_KeepsCellTextOverBase(t *testing.T) {
	tbl := oneTwoThree(t, []string{" x", "1", "W"})
	r, err := diff.NewResult(tbl, []int{0}, []testObject{{One: str("abcdef")}})
	require.NoError(t, err)

	msg, ok := NewAligned[testObject](NewBase[testObject]()).Render(r)
	require.True(t, ok)
	assert.Equal(t, ""+
		"  | One    | Two | Three |\n"+
		"- |  x     | 1   | W     |\n"+
		"+ | abcdef |     |       |\n", msg)
	assert.Equal(t, msg, Align(msg))
}

func TestAlign_WideRunes(t *testing.T) {
	raw := "  | 名前 | x |\n+ | ab | y |\n"
	assert.Equal(t, "  | 名前 | x |\n+ | ab   | y |\n", Align(raw))
}

func TestAligned_Golden(t *testing.T) {
	tbl := oneTwoThree(t,
		[]string{"testa", "1", "W"},
		[]string{"testb", "2", "X"},
		[]string{"testc", "3", "Y"},
		[]string{"testd", "4", "Z"},
	)
	extras := []testObject{
		{One: str("A"), Two: num(1), Three: str("Z")},
		{One: str("B1"), Two: num(1234567), Three: str("ZYXW")},
	}
	r, err := diff.NewResult(tbl, []int{1, 2}, extras)
	require.NoError(t, err)

	msg, ok := NewAligned[testObject](NewBase[testObject]()).Render(r)
	require.True(t, ok)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "aligned_missing_and_extra", []byte(msg))
}

func TestPretty_Render(t *testing.T) {
	tbl := oneTwoThree(t,
		[]string{"testa", "1", "W"},
		[]string{"testb", "2", "X"},
	)
	r, err := diff.NewResult(tbl, []int{1}, []testObject{{One: str("A"), Two: num(7)}})
	require.NoError(t, err)

	msg, ok := NewPretty[testObject](locale.Invariant).Render(r)
	require.True(t, ok)

	assert.Contains(t, msg, "One")
	assert.Contains(t, msg, "testb")
	assert.Contains(t, msg, "│ - │")
	assert.Contains(t, msg, "│ + │")
	assert.True(t, strings.HasSuffix(msg, "\n"))

	_, ok = NewPretty[testObject](locale.Invariant).Render(nil)
	assert.False(t, ok)
}

func TestParseStyle(t *testing.T) {
	st, err := ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, StyleAligned, st)

	st, err = ParseStyle("BOX")
	require.NoError(t, err)
	assert.Equal(t, StyleBox, st)

	_, err = ParseStyle("fancy")
	assert.ErrorIs(t, err, ErrUnknownStyle)
	assert.Contains(t, err.Error(), "aligned, raw, box")
}

func TestNew_StyleChains(t *testing.T) {
	assert.IsType(t, &Aligned[testObject]{}, New[testObject](StyleAligned, locale.Invariant))
	assert.IsType(t, &Base[testObject]{}, New[testObject](StyleRaw, locale.Invariant))
	assert.IsType(t, &Pretty[testObject]{}, New[testObject](StyleBox, locale.Invariant))
	assert.IsType(t, &Aligned[testObject]{}, New[testObject](Style("other"), locale.Invariant))
}
