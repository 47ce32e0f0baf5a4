package remote

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"worship-presenter/internal/app"
	"worship-presenter/internal/deck"
	"worship-presenter/internal/show"
)

func testServer(t *testing.T) (*httptest.Server, *app.State) {
	t.Helper()
	state := app.NewState(deck.Sample())
	srv := NewServer(Config{}, state, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, state
}

func getJSON(t *testing.T, url string, v interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func postJSON(t *testing.T, url string, v interface{}) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "", nil)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestGetDeck(t *testing.T) {
	ts, state := testServer(t)

	var d deck.Deck
	getJSON(t, ts.URL+"/api/deck", &d)

	if d.ID != state.Deck().ID {
		t.Errorf("deck id = %q, want %q", d.ID, state.Deck().ID)
	}
	if len(d.Slides) != len(state.Deck().Slides) {
		t.Errorf("slides = %d, want %d", len(d.Slides), len(state.Deck().Slides))
	}
}

func TestGetShow(t *testing.T) {
	ts, _ := testServer(t)

	var sh show.Show
	getJSON(t, ts.URL+"/api/show", &sh)
	if sh.Running {
		t.Error("show must start stopped")
	}
}

func TestShowCommands(t *testing.T) {
	ts, state := testServer(t)

	var sh show.Show
	postJSON(t, ts.URL+"/api/show/start", &sh)
	if !sh.Running || sh.SlideIndex != 0 {
		t.Fatalf("after start: %+v", sh)
	}

	postJSON(t, ts.URL+"/api/show/next", &sh)
	if sh.SlideIndex != 1 {
		t.Errorf("after next: index %d, want 1", sh.SlideIndex)
	}

	postJSON(t, ts.URL+"/api/show/blank", &sh)
	if !sh.Blanked {
		t.Error("blank command had no effect")
	}

	postJSON(t, ts.URL+"/api/show/prev", &sh)
	if sh.SlideIndex != 0 {
		t.Errorf("after prev: index %d, want 0", sh.SlideIndex)
	}

	postJSON(t, ts.URL+"/api/show/stop", &sh)
	if sh.Running {
		t.Error("stop command had no effect")
	}
	if state.Show().Running {
		t.Error("command did not reach the application state")
	}
}

func TestGoto(t *testing.T) {
	ts, state := testServer(t)
	state.StartShow()

	var sh show.Show
	postJSON(t, ts.URL+"/api/show/goto/1", &sh)
	if sh.SlideIndex != 1 {
		t.Errorf("after goto: index %d, want 1", sh.SlideIndex)
	}

	resp := postJSON(t, ts.URL+"/api/show/goto/abc", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("non-numeric index: status %d, want 400", resp.StatusCode)
	}
}

func TestMethodRestrictions(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/api/show/start")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET on a command: status %d, want 405", resp.StatusCode)
	}
}
