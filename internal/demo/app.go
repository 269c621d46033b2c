// Package demo is the sample application behind `fax serve`: a
// searchable member directory built from keyed child sequences, wired
// to the keyword searcher.
package demo

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/faxui/fax"
	"github.com/faxui/fax/pkg/fdom"
	"github.com/faxui/fax/pkg/search"
)

// Member is one directory entry.
type Member struct {
	ID    string
	Name  string
	Title string
}

// DefaultMembers seeds the demo directory.
func DefaultMembers() []Member {
	return []Member{
		{ID: "ada", Name: "Ada Lovelace", Title: "Analyst"},
		{ID: "grace", Name: "Grace Hopper", Title: "Rear Admiral"},
		{ID: "alan", Name: "Alan Turing", Title: "Logician"},
		{ID: "edsger", Name: "Edsger Dijkstra", Title: "Professor"},
		{ID: "barbara", Name: "Barbara Liskov", Title: "Professor"},
		{ID: "ken", Name: "Ken Thompson", Title: "Engineer"},
	}
}

// App owns the demo state and the mounted root.
type App struct {
	mu       sync.Mutex
	root     *fax.Root
	searcher search.Searcher
	members  []Member
	query    string
	matches  []Member
	logger   *slog.Logger
}

// New builds an unmounted app over the given members.
func New(members []Member, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	space := make([]search.Record, len(members))
	for i, m := range members {
		space[i] = search.Record{
			KeyWords: m.Name + " " + m.Title,
			Name:     m.Name,
			Entity:   m,
		}
	}
	return &App{
		searcher: search.MakeSearcher(space),
		members:  members,
		matches:  members,
		logger:   logger,
	}
}

// Mount renders the first paint and binds the live root.
func (a *App) Mount(opts ...fax.Option) (*fax.Root, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	root, err := fax.Mount(a.build(), opts...)
	if err != nil {
		return nil, err
	}
	a.root = root
	return root, nil
}

// build constructs the full control tree for the current state.
func (a *App) build() *fdom.Control {
	return fdom.Div(a.props())
}

// props computes the root control's properties for the current state.
// Each member row keeps its ID as the child key so filtering reorders
// and removes rows without recreating surviving ones.
func (a *App) props() fdom.Props {
	rows := make([]fdom.ChildEntry, 0, len(a.matches))
	for _, m := range a.matches {
		rows = append(rows, fdom.Entry(m.ID, fdom.Div(fdom.Props{
			"className": "member",
			"children": []*fdom.Control{
				fdom.Span(fdom.Props{"className": "name", "content": m.Name}),
				fdom.Span(fdom.Props{"className": "title", "content": m.Title}),
			},
		})))
	}

	return fdom.Props{
		"className": "directory",
		"children": []fdom.ChildEntry{
			fdom.Entry("header", fdom.Div(fdom.Props{
				"className": "header",
				"children": []*fdom.Control{
					fdom.H1(fdom.Props{"content": "Member Directory"}),
					fdom.Input(fdom.Props{
						"type":        "text",
						"placeholder": "Search members",
						"value":       a.query,
						"onKeyUp":     fdom.Handler(a.onSearch),
					}),
					fdom.Span(fdom.Props{
						"className": "count",
						"content":   fmt.Sprintf("%d of %d", len(a.matches), len(a.members)),
					}),
				},
			})),
			fdom.Entry("list", fdom.Div(fdom.Props{
				"className": "list",
				"children":  rows,
			})),
		},
	}
}

// onSearch runs the query and re-renders when results arrive. Cache
// hits resolve before Dispatch returns; misses re-render from the
// searcher's timer goroutine.
func (a *App) onSearch(ev fdom.Event) {
	a.mu.Lock()
	a.query = ev.Value
	a.mu.Unlock()

	a.searcher(ev.Value, func(res search.Result) {
		a.mu.Lock()
		defer a.mu.Unlock()
		if res.Text != a.query {
			return // stale result, a newer query superseded it
		}
		matches := make([]Member, 0, len(res.MatchingEntities))
		for _, e := range res.MatchingEntities {
			if m, ok := e.(Member); ok {
				matches = append(matches, m)
			}
		}
		a.matches = matches
		if a.root == nil {
			return
		}
		if err := a.root.Update(a.props()); err != nil {
			a.logger.Error("update failed", "error", err)
		}
	})
}
