package layout

import (
	"reflect"
	"strings"
	"testing"
)

func TestWrapRespectsMaxWidth(t *testing.T) {
	face := stubFace{size: 31, ratio: 0.5}
	const maxWidth = 400.0
	lines := Wrap(filler(300), face, maxWidth)
	if len(lines) < 2 {
		t.Fatalf("expected several lines, got %d", len(lines))
	}
	for i, line := range lines {
		words := strings.Fields(line)
		if len(words) < 2 {
			continue
		}
		w := 0.0
		for _, word := range words {
			w += face.TextWidth(word + " ")
		}
		if w > maxWidth {
			t.Fatalf("line %d %q measures %.1f > %.1f", i, line, w, maxWidth)
		}
	}
}

func TestWrapNeverSplitsLongWords(t *testing.T) {
	face := stubFace{size: 10, ratio: 1}
	long := strings.Repeat("x", 99)
	lines := Wrap("a "+long+" b", face, 100)
	want := []string{"a", long, "b"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
}

func TestWrapThreeLongWordsOnePerLine(t *testing.T) {
	face := stubFace{size: 31, ratio: 0.5}
	w := strings.Repeat("m", 99)
	lines := Wrap(w+" "+w+" "+w, face, 1000)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	for _, l := range lines {
		if l != w {
			t.Fatalf("unexpected line %q", l)
		}
	}
}

func TestWrapHonorsNewlines(t *testing.T) {
	face := stubFace{size: 10, ratio: 1}
	lines := Wrap("one\n\ntwo three", face, 1000)
	want := []string{"one", "", "two three"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
}

// 恰好等宽时不应提前换行。
func TestWrapEqualWidthFits(t *testing.T) {
	face := stubFace{size: 1, ratio: 1}
	lines := Wrap("ab cd", face, 6)
	if len(lines) != 1 || lines[0] != "ab cd" {
		t.Fatalf("expected a single line, got %q", lines)
	}
}

func TestWrapEmptyText(t *testing.T) {
	face := stubFace{size: 10, ratio: 1}
	if lines := Wrap("", face, 100); len(lines) != 0 {
		t.Fatalf("expected no lines, got %q", lines)
	}
	if h := BlockHeight(nil, 57, 1.1); h != 0 {
		t.Fatalf("expected zero height, got %d", h)
	}
}

func TestWrapDeterministic(t *testing.T) {
	face := stubFace{size: 37, ratio: 0.5}
	text := filler(255)
	first := Wrap(text, face, 1000)
	for i := 0; i < 5; i++ {
		if got := Wrap(text, face, 1000); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %q vs %q", i, got, first)
		}
	}
}

func TestLineAdvanceFloors(t *testing.T) {
	cases := []struct {
		size int
		want int
	}{
		{57, 62},
		{37, 40},
		{31, 34},
		{198, 217},
		{43, 47},
	}
	for _, c := range cases {
		if got := LineAdvance(c.size, 1.1); got != c.want {
			t.Fatalf("LineAdvance(%d) = %d, want %d", c.size, got, c.want)
		}
	}
	if got := BlockHeight([]string{"a", "b", "c"}, 31, 1.1); got != 102 {
		t.Fatalf("BlockHeight = %d, want 102", got)
	}
}

func TestLineOriginsEndAtBottom(t *testing.T) {
	b := PlacedBlock{
		WrappedBlock: WrappedBlock{
			Lines:      []string{"a", "b", "c", "d"},
			LineHeight: LineAdvance(31, 1.1),
			Height:     BlockHeight(make([]string, 4), 31, 1.1),
		},
		Y: 100,
	}
	origins := b.LineOrigins()
	if len(origins) != 4 {
		t.Fatalf("expected 4 origins, got %d", len(origins))
	}
	if origins[0] != b.Y {
		t.Fatalf("first origin %d != Y %d", origins[0], b.Y)
	}
	if last := origins[3] + b.LineHeight; last != b.Bottom() {
		t.Fatalf("cursor after last line %d != bottom %d", last, b.Bottom())
	}
}
