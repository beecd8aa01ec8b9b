package interval

import (
	"reflect"
	"testing"
)

func add(l *List, lo, up int) { l.Add(1000, lo, up) }

func TestAddMergeScenarios(t *testing.T) {
	cases := []struct {
		name  string
		spans [][2]int
		want  []Span
	}{
		{"simple-ascending", [][2]int{{0, 100}, {200, 300}}, []Span{{0, 100}, {200, 300}}},
		{"simple-descending-input", [][2]int{{200, 300}, {0, 100}}, []Span{{0, 100}, {200, 300}}},
		{
			"insert-between",
			[][2]int{{0, 100}, {200, 300}, {400, 500}, {600, 700}, {150, 175}},
			[]Span{{0, 100}, {150, 175}, {200, 300}, {400, 500}, {600, 700}},
		},
		{
			"merge-touching",
			[][2]int{{0, 100}, {200, 300}, {400, 500}, {600, 700}, {50, 150}},
			[]Span{{0, 150}, {200, 300}, {400, 500}, {600, 700}},
		},
		{
			"merge-spanning-two",
			[][2]int{{0, 100}, {200, 300}, {400, 500}, {600, 700}, {50, 250}},
			[]Span{{0, 300}, {400, 500}, {600, 700}},
		},
		{
			"merge-spanning-three",
			[][2]int{{200, 300}, {400, 500}, {600, 700}, {50, 1000}},
			[]Span{{50, 1000}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewList()
			for _, s := range tc.spans {
				add(l, s[0], s[1])
			}
			got := l.Spans()
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestComplementScenarios(t *testing.T) {
	t.Run("three-gaps", func(t *testing.T) {
		l := NewList()
		add(l, 400, 500)
		add(l, 600, 700)
		add(l, 800, 900)
		l.Complement(200, 1000)
		want := []Span{{200, 400}, {500, 600}, {700, 800}, {900, 1000}}
		if got := l.Spans(); !reflect.DeepEqual(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("empty-list", func(t *testing.T) {
		l := NewList()
		l.Complement(200, 1000)
		want := []Span{{200, 1000}}
		if got := l.Spans(); !reflect.DeepEqual(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})
}

func TestComplementSelfInverse(t *testing.T) {
	l := NewList()
	add(l, 10, 20)
	add(l, 30, 40)
	original := append([]Span(nil), l.Spans()...)

	l.Complement(0, 100)
	l.Complement(0, 100)

	if got := l.Spans(); !reflect.DeepEqual(got, original) {
		t.Fatalf("complement not self-inverse: got %v, want %v", got, original)
	}
}

func TestAddSaturationShortcut(t *testing.T) {
	l := NewList()
	if l.Add(100, 0, 50) {
		t.Fatalf("did not expect saturation yet")
	}
	if !l.Add(100, 50, 100) {
		t.Fatalf("expected saturation once union covers [0, maxUpper)")
	}
}

func TestCleanRecyclesNodes(t *testing.T) {
	l := NewList()
	add(l, 0, 10)
	add(l, 20, 30)
	l.Clean()
	if l.Len() != 0 {
		t.Fatalf("expected empty list after Clean, got %d spans", l.Len())
	}
	// Re-adding should reuse garbage nodes without panicking or losing data.
	add(l, 5, 15)
	if got := l.Spans(); !reflect.DeepEqual(got, []Span{{5, 15}}) {
		t.Fatalf("got %v", got)
	}
}

func TestParseSpecTable(t *testing.T) {
	cases := []struct {
		spec string
		base int
		want []Span
	}{
		{"1,3,5", 1, []Span{{0, 1}, {2, 3}, {4, 5}}},
		{"2-4", 1, []Span{{1, 4}}},
		{"3-", 1, []Span{{2, maxUpper}}},
		{"-3", 1, []Span{{0, 3}}},
		{"0-100,200-300", 0, []Span{{0, 100}, {200, 300}}},
	}
	for _, tc := range cases {
		l, err := ParseSpec(tc.spec, tc.base)
		if err != nil {
			t.Fatalf("ParseSpec(%q, %d): unexpected error: %v", tc.spec, tc.base, err)
		}
		if got := l.Spans(); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ParseSpec(%q, %d) = %v, want %v", tc.spec, tc.base, got, tc.want)
		}
	}
}

func TestParseSpecErrors(t *testing.T) {
	cases := []struct {
		spec string
		want error
	}{
		{"", nil}, // empty spec parses to an empty list, not an error
		{"abc", ErrNonDigitFound},
		{"5-2", ErrInvalidRange},
		{",", ErrNumberExpected},
	}
	for _, tc := range cases {
		_, err := ParseSpec(tc.spec, 0)
		if tc.want == nil {
			if err != nil {
				t.Errorf("ParseSpec(%q): unexpected error %v", tc.spec, err)
			}
			continue
		}
		if err != tc.want {
			t.Errorf("ParseSpec(%q) error = %v, want %v", tc.spec, err, tc.want)
		}
	}
}
