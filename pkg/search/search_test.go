package search

import (
	"testing"
	"time"
)

func testSpace() []Record {
	return []Record{
		{KeyWords: "ada analyst numbers", Name: "Ada", Entity: "ada"},
		{KeyWords: "grace compiler navy", Name: "Grace", Entity: "grace"},
		{Name: "Turing", Entity: "turing"}, // no keywords, Name is matched
	}
}

// await collects one result, failing the test if none arrives.
func await(t *testing.T, s Searcher, query string) Result {
	t.Helper()
	ch := make(chan Result, 1)
	s(query, func(r Result) { ch <- r })
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatalf("no result for query %q", query)
		return Result{}
	}
}

func entities(r Result) []string {
	out := make([]string, 0, len(r.MatchingEntities))
	for _, e := range r.MatchingEntities {
		out = append(out, e.(string))
	}
	return out
}

func TestEmptyQueryMatchesAll(t *testing.T) {
	s := MakeSearcher(testSpace())
	r := await(t, s, "")
	if len(r.MatchingEntities) != 3 {
		t.Errorf("matches = %v, want all 3", entities(r))
	}
}

func TestSubstringMatchCaseInsensitive(t *testing.T) {
	s := MakeSearcher(testSpace())

	r := await(t, s, "COMPIL")
	if got := entities(r); len(got) != 1 || got[0] != "grace" {
		t.Errorf("matches = %v, want [grace]", got)
	}
	if r.Text != "COMPIL" {
		t.Errorf("Text = %q, want original query", r.Text)
	}
}

func TestNameFallback(t *testing.T) {
	s := MakeSearcher(testSpace())
	r := await(t, s, "turing")
	if got := entities(r); len(got) != 1 || got[0] != "turing" {
		t.Errorf("matches = %v, want [turing]", got)
	}
}

func TestNoMatches(t *testing.T) {
	s := MakeSearcher(testSpace())
	r := await(t, s, "zzz")
	if len(r.MatchingEntities) != 0 {
		t.Errorf("matches = %v, want none", entities(r))
	}
}

func TestMissIsDeferredHitIsSynchronous(t *testing.T) {
	s := MakeSearcher(testSpace())

	// First query: the callback must not run before Searcher returns.
	done := make(chan Result, 1)
	start := time.Now()
	s("ada", func(r Result) { done <- r })
	select {
	case <-done:
		t.Fatal("miss resolved synchronously")
	default:
	}
	select {
	case <-done:
		if elapsed := time.Since(start); elapsed < MissLatency {
			t.Errorf("miss resolved after %v, want >= %v", elapsed, MissLatency)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("miss never resolved")
	}

	// Second identical query: cached, resolves before Searcher returns.
	sync := false
	s("ada", func(Result) { sync = true })
	if !sync {
		t.Error("cache hit did not resolve synchronously")
	}
}
