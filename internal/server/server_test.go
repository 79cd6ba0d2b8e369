package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/deckweaver/deckweaver/internal/deck"
	"github.com/deckweaver/deckweaver/internal/db"
	"github.com/deckweaver/deckweaver/internal/drive"
	"github.com/deckweaver/deckweaver/internal/library"
	"github.com/deckweaver/deckweaver/internal/store"
	"github.com/deckweaver/deckweaver/internal/syncer"
)

func newTestServer() (*Server, *store.Store) {
	live := store.New()
	return New(Config{Listen: "127.0.0.1:0"}, live, nil, nil), live
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	s, _ := newTestServer()
	w := do(t, s, "GET", "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGetProject(t *testing.T) {
	s, _ := newTestServer()
	w := do(t, s, "GET", "/api/project", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var view struct {
		Project  *deck.Project `json:"project"`
		Selected int           `json:"selected"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(view.Project.Slides) != 1 {
		t.Errorf("fresh project slides = %d", len(view.Project.Slides))
	}
}

func TestPutProjectReplacesLiveState(t *testing.T) {
	s, live := newTestServer()
	body := `{"name":"demo","metadata":{"title":"Demo"},"theme":{"base":"forest"},` +
		`"slides":[{"template":"section","data":{"title":"Part One"}}]}`
	w := do(t, s, "PUT", "/api/project", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	state := live.State()
	if state.Name != "demo" || state.Theme.Base != "forest" {
		t.Errorf("live state not replaced: %+v", state)
	}
}

func TestAddSlide(t *testing.T) {
	s, live := newTestServer()

	w := do(t, s, "POST", "/api/slides", `{"template":"quote"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	state := live.State()
	if len(state.Slides) != 2 || state.Slides[1].Template != deck.KindQuote {
		t.Errorf("slide not added: %+v", state.Slides)
	}

	w = do(t, s, "POST", "/api/slides", `{"template":"hologram"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown kind: expected 400, got %d", w.Code)
	}
}

func TestPutSlide(t *testing.T) {
	s, live := newTestServer()

	body := `{"template":"title","data":{"title":"Hello","subtitle":"World"}}`
	w := do(t, s, "PUT", "/api/slides/0", body)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	data, ok := live.State().Slides[0].Data.(*deck.TitleData)
	if !ok || data.Title != "Hello" {
		t.Errorf("slide data not updated: %+v", live.State().Slides[0].Data)
	}

	w = do(t, s, "PUT", "/api/slides/9", body)
	if w.Code != http.StatusNotFound {
		t.Errorf("out of range: expected 404, got %d", w.Code)
	}
	w = do(t, s, "PUT", "/api/slides/x", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad index: expected 400, got %d", w.Code)
	}
}

func TestDuplicateAndDeleteSlide(t *testing.T) {
	s, live := newTestServer()

	w := do(t, s, "POST", "/api/slides/0/duplicate", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("duplicate: expected 201, got %d", w.Code)
	}
	if len(live.State().Slides) != 2 {
		t.Fatalf("slides after duplicate = %d", len(live.State().Slides))
	}

	w = do(t, s, "DELETE", "/api/slides/1", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	if len(live.State().Slides) != 1 {
		t.Errorf("slides after delete = %d", len(live.State().Slides))
	}

	w = do(t, s, "DELETE", "/api/slides/5", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("out of range delete: expected 404, got %d", w.Code)
	}
}

func TestMoveSlide(t *testing.T) {
	s, live := newTestServer()
	live.AddSlide(deck.KindQuote)

	w := do(t, s, "POST", "/api/slides/move", `{"from":1,"to":0}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if live.State().Slides[0].Template != deck.KindQuote {
		t.Errorf("slide not moved: %v", live.State().Slides[0].Template)
	}
}

func TestRenderSlideFragment(t *testing.T) {
	s, _ := newTestServer()

	w := do(t, s, "GET", "/api/slides/0/render", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `class="dw-slide dw-title"`) {
		t.Errorf("fragment missing slide markup: %s", w.Body.String())
	}

	w = do(t, s, "GET", "/api/slides/7/render", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("out of range render: expected 404, got %d", w.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	s, _ := newTestServer()
	w := do(t, s, "GET", "/api/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "<!DOCTYPE html>") {
		t.Error("export body is not a document")
	}
}

func TestThemesEndpoint(t *testing.T) {
	s, _ := newTestServer()
	w := do(t, s, "GET", "/api/themes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var names []string
	if err := json.Unmarshal(w.Body.Bytes(), &names); err != nil {
		t.Fatalf("decoding themes: %v", err)
	}
	if len(names) == 0 {
		t.Error("no theme names returned")
	}
}

func TestSyncUnconfigured(t *testing.T) {
	s, _ := newTestServer()
	if w := do(t, s, "POST", "/api/sync", ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
	w := do(t, s, "GET", "/api/sync/status", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "disabled") {
		t.Errorf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestWebSocketInvalidation(t *testing.T) {
	s, live := newTestServer()
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	// Give the handler a moment to register its store subscription.
	time.Sleep(50 * time.Millisecond)
	live.AddSlide(deck.KindStats)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev struct {
		Type   string `json:"type"`
		Slides int    `json:"slides"`
	}
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("reading event: %v", err)
	}
	if ev.Type != "slides" || ev.Slides != 2 {
		t.Errorf("event = %+v", ev)
	}
}

// slowRemote delays creation long enough for the HTTP handler to return
// first, and honors context cancellation the way a real HTTP client does.
type slowRemote struct {
	*drive.Memory
	delay time.Duration
}

func (r *slowRemote) Create(ctx context.Context, p *deck.Project) (*drive.FileRef, error) {
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return r.Memory.Create(ctx, p)
}

func TestSyncTriggerOutlivesRequest(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer database.Close()
	lib := library.NewStore(database)

	live := store.New()
	live.Update(func(p *deck.Project) { p.Name = "demo" })

	remote := &slowRemote{Memory: drive.NewMemory(), delay: 30 * time.Millisecond}
	engine := syncer.New(remote, lib, live, syncer.Options{BackoffBase: time.Millisecond})
	engine.SetSignedIn(true)
	engine.SetEnabled(true)

	s := New(Config{Listen: "127.0.0.1:0"}, live, lib, engine)

	w := do(t, s, "POST", "/api/sync", "")
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}

	// The push keeps running after the 202; the request context must not
	// take it down.
	deadline := time.Now().Add(2 * time.Second)
	for remote.Count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("sync never reached the remote, status %q", engine.Status())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if engine.Status() == syncer.StatusError {
		t.Fatal("sync ended in error state")
	}
}
