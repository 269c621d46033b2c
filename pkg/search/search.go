// Package search provides a small keyword searcher over an in-memory
// record space, with a result cache that resolves repeated queries
// synchronously and first-time queries after a fixed simulated
// latency.
package search

import (
	"strings"
	"sync"
	"time"
)

// MissLatency is the artificial delay applied to uncached queries.
const MissLatency = 100 * time.Millisecond

// Record is one searchable entry. KeyWords is the text matched
// against; when empty, Name is matched instead. Entity is the opaque
// payload returned for matches.
type Record struct {
	KeyWords string
	Name     string
	Entity   any
}

// Result is the outcome of one query.
type Result struct {
	MatchingEntities []any
	Text             string
}

// Searcher runs a query and delivers the result to cb. A cache hit
// invokes cb synchronously before Searcher returns; a miss invokes it
// from a timer goroutine after MissLatency.
type Searcher func(text string, cb func(Result))

// keywords returns the text a record is matched against.
func (r Record) keywords() string {
	if r.KeyWords != "" {
		return r.KeyWords
	}
	return r.Name
}

// MakeSearcher builds a Searcher over the given space. Matching is
// case-insensitive substring containment, and the empty query matches
// every record.
func MakeSearcher(space []Record) Searcher {
	var mu sync.Mutex
	cache := make(map[string]Result)

	run := func(text string) Result {
		needle := strings.ToLower(text)
		var matches []any
		for _, rec := range space {
			if needle == "" || strings.Contains(strings.ToLower(rec.keywords()), needle) {
				matches = append(matches, rec.Entity)
			}
		}
		return Result{MatchingEntities: matches, Text: text}
	}

	return func(text string, cb func(Result)) {
		mu.Lock()
		res, hit := cache[text]
		mu.Unlock()
		if hit {
			cb(res)
			return
		}
		time.AfterFunc(MissLatency, func() {
			res := run(text)
			mu.Lock()
			cache[text] = res
			mu.Unlock()
			cb(res)
		})
	}
}
