package pathmatch

import "testing"

func TestMatchPathIncludeExclude(t *testing.T) {
	m, err := Compile([]string{"*.go"}, "*_test.go", CompileOptions{CaseSensitive: true})
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"main.go":      true,
		"main_test.go": false,
		"main.py":      false,
	}
	for name, want := range cases {
		if got := m.MatchPath(name); got != want {
			t.Errorf("MatchPath(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestMatchPathCaseInsensitive(t *testing.T) {
	m, err := Compile([]string{"*.GO"}, "", CompileOptions{CaseSensitive: false})
	if err != nil {
		t.Fatal(err)
	}
	if !m.MatchPath("main.go") {
		t.Error("expected case-insensitive match")
	}
}

func TestNilMatcherMatchesEverything(t *testing.T) {
	var m *Matcher
	if !m.MatchPath("anything") {
		t.Error("nil matcher should match everything")
	}
}
