package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/faxui/fax"
	"github.com/faxui/fax/pkg/fdom"
	"github.com/faxui/fax/pkg/protocol"
)

// counterApp is a minimal interactive tree: clicking the button bumps
// the rendered count.
type counterApp struct {
	count int
	root  *fax.Root
}

func (a *counterApp) props() fdom.Props {
	return fdom.Props{
		"className": "counter",
		"children": fdom.Keyed(
			fdom.Entry("label", fdom.Span(fdom.Props{"content": strconv.Itoa(a.count)})),
			fdom.Entry("btn", fdom.Button(fdom.Props{
				"content": "increment",
				"onClick": fdom.Handler(func(fdom.Event) {
					a.count++
					a.root.Update(a.props())
				}),
			})),
		),
	}
}

func newCounterRoot() (*fax.Root, error) {
	app := &counterApp{}
	root, err := fax.Mount(fdom.Div(app.props()))
	if err != nil {
		return nil, err
	}
	app.root = root
	return root, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(Config{
		NewRoot:  newCounterRoot,
		Registry: prometheus.NewRegistry(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func TestNewRequiresRootFactory(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("New() accepted empty config")
	}
}

func TestIndexServesFirstPaint(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	buf := make([]byte, 4096)
	n, _ := resp.Body.Read(buf)
	body := string(buf[:n])
	for _, want := range []string{`id=".r"`, `id=".r.label"`, "increment"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestWebsocketEventRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// A click on the button produces a SetText mutation batch.
	ev := fdom.Event{NodeID: ".r.btn", Type: "click"}
	if err := conn.WriteMessage(websocket.BinaryMessage, protocol.EncodeEvent(ev, 1)); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	if frame.Type != protocol.FrameMutations {
		t.Fatalf("frame type = %s, want Mutations", frame.Type)
	}
	muts, err := protocol.DecodeMutations(frame)
	if err != nil {
		t.Fatalf("DecodeMutations() error = %v", err)
	}
	found := false
	for _, m := range muts {
		if m.Op == fdom.MutationSetText && m.NodeID == ".r.label" && m.Value == "1" {
			found = true
		}
	}
	if !found {
		t.Errorf("mutations = %+v, want SetText(.r.label, 1)", muts)
	}
}

func TestWebsocketControlEcho(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	ping := &protocol.Frame{Type: protocol.FrameControl, Seq: 9, Payload: []byte("ping")}
	if err := conn.WriteMessage(websocket.BinaryMessage, ping.Encode()); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	if frame.Type != protocol.FrameControl || frame.Seq != 9 || string(frame.Payload) != "ping" {
		t.Errorf("echo = %+v", frame)
	}
}

// deferredApp updates from a timer goroutine instead of inside the
// dispatched handler, the way a search callback resolves a cache miss.
type deferredApp struct {
	mu    sync.Mutex
	label string
	root  *fax.Root
}

func (a *deferredApp) props() fdom.Props {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fdom.Props{
		"children": fdom.Keyed(
			fdom.Entry("label", fdom.Span(fdom.Props{"content": a.label})),
			fdom.Entry("btn", fdom.Button(fdom.Props{
				"content": "go",
				"onClick": fdom.Handler(func(fdom.Event) {
					time.AfterFunc(10*time.Millisecond, func() {
						a.mu.Lock()
						a.label = "done"
						a.mu.Unlock()
						a.root.Update(a.props())
					})
				}),
			})),
		),
	}
}

func TestWebsocketPushesDeferredUpdate(t *testing.T) {
	newRoot := func() (*fax.Root, error) {
		app := &deferredApp{label: "waiting"}
		root, err := fax.Mount(fdom.Div(app.props()))
		if err != nil {
			return nil, err
		}
		app.root = root
		return root, nil
	}
	srv, err := New(Config{NewRoot: newRoot, Registry: prometheus.NewRegistry()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	ev := fdom.Event{NodeID: ".r.btn", Type: "click"}
	if err := conn.WriteMessage(websocket.BinaryMessage, protocol.EncodeEvent(ev, 1)); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}

	// The mutation frame must arrive without any further client
	// message once the timer fires.
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	if frame.Type != protocol.FrameMutations {
		t.Fatalf("frame type = %s, want Mutations", frame.Type)
	}
	muts, err := protocol.DecodeMutations(frame)
	if err != nil {
		t.Fatalf("DecodeMutations() error = %v", err)
	}
	found := false
	for _, m := range muts {
		if m.Op == fdom.MutationSetText && m.NodeID == ".r.label" && m.Value == "done" {
			found = true
		}
	}
	if !found {
		t.Errorf("mutations = %+v, want SetText(.r.label, done)", muts)
	}
}
