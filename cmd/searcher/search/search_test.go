package search_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/sourcegraph/utext/cmd/searcher/protocol"
	"github.com/sourcegraph/utext/cmd/searcher/search"
)

func TestServeHTTP(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"README.md": "# Hello World\n\nHello world example in go\n",
		"main.go":    "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n",
	}
	var sources []protocol.SourceSpec
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		sources = append(sources, protocol.SourceSpec{Driver: "mmap", Path: path, Name: name})
	}

	svc := &search.Service{}
	srv := httptest.NewServer(svc)
	defer srv.Close()

	cases := []struct {
		pattern   string
		isRegExp  bool
		wantPaths map[string]int // path -> expected match count
	}{
		{pattern: "World", isRegExp: false, wantPaths: map[string]int{"README.md": 2}},
		{pattern: "^func", isRegExp: true, wantPaths: map[string]int{"main.go": 1}},
		{pattern: "nonexistent-pattern-xyz", wantPaths: map[string]int{}},
	}

	for _, c := range cases {
		t.Run(c.pattern, func(t *testing.T) {
			form := encodeRequest(sources, c.pattern, c.isRegExp)
			resp, err := http.PostForm(srv.URL, form)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			var r protocol.Response
			if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
				t.Fatal(err)
			}
			got := map[string]int{}
			for _, fm := range r.Matches {
				got[fm.Path] = fm.MatchCount
			}
			for path, want := range c.wantPaths {
				if got[path] != want {
					t.Errorf("path %q: got %d matches, want %d (all matches: %+v)", path, got[path], want, r.Matches)
				}
			}
		})
	}
}

// encodeRequest mirrors how a real client populates the gorilla/schema
// decoded form: repeated Sources.N.Driver/Path/Name keys plus the flat
// PatternInfo fields.
func encodeRequest(sources []protocol.SourceSpec, pattern string, isRegExp bool) url.Values {
	form := url.Values{}
	form.Set("Pattern", pattern)
	form.Set("IsRegExp", strconv.FormatBool(isRegExp))
	for i, s := range sources {
		prefix := "Sources." + strconv.Itoa(i) + "."
		form.Set(prefix+"Driver", s.Driver)
		form.Set(prefix+"Path", s.Path)
		form.Set(prefix+"Name", s.Name)
	}
	return form
}
