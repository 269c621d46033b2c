package demo

import (
	"strings"
	"testing"
	"time"

	"github.com/faxui/fax/pkg/fdom"
)

func TestMountRendersAllMembers(t *testing.T) {
	app := New(DefaultMembers(), nil)
	root, err := app.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	markup := root.Markup()
	for _, m := range DefaultMembers() {
		if !strings.Contains(markup, m.Name) {
			t.Errorf("markup missing member %q", m.Name)
		}
	}
	if !strings.Contains(markup, "6 of 6") {
		t.Errorf("count line missing: %s", markup)
	}
}

func TestSearchFiltersRows(t *testing.T) {
	app := New(DefaultMembers(), nil)
	root, err := app.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	// First query is a cache miss and resolves from the timer.
	root.Dispatch(fdom.Event{NodeID: ".r.header.1", Type: "keyup", Value: "professor"})
	deadline := time.Now().Add(2 * time.Second)
	for {
		if strings.Contains(root.Markup(), "2 of 6") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("filter never applied: %s", root.Markup())
		}
		time.Sleep(10 * time.Millisecond)
	}

	markup := root.Markup()
	if !strings.Contains(markup, "Dijkstra") || !strings.Contains(markup, "Liskov") {
		t.Errorf("professors missing: %s", markup)
	}
	if strings.Contains(markup, "Hopper") {
		t.Errorf("filtered member still rendered: %s", markup)
	}
}

func TestSearchClearRestores(t *testing.T) {
	app := New(DefaultMembers(), nil)
	root, err := app.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	root.Dispatch(fdom.Event{NodeID: ".r.header.1", Type: "keyup", Value: "ada"})
	waitFor(t, func() bool { return strings.Contains(root.Markup(), "1 of 6") })

	root.Dispatch(fdom.Event{NodeID: ".r.header.1", Type: "keyup", Value: ""})
	waitFor(t, func() bool { return strings.Contains(root.Markup(), "6 of 6") })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition never satisfied")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
