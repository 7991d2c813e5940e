package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/errors"
	"github.com/matzehuels/tabooprint/pkg/layout"
	"github.com/matzehuels/tabooprint/pkg/pipeline"
)

var fakePDF = []byte("%PDF-1.3 fake\n%%EOF\n")

type recorder struct {
	mu    sync.Mutex
	decks []deck.Deck
	cfgs  []layout.PageConfig
}

func (r *recorder) generator(err error) pipeline.DocumentGenerator {
	return pipeline.GeneratorFunc(func(_ context.Context, d deck.Deck, cfg layout.PageConfig) ([]byte, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.decks = append(r.decks, d)
		r.cfgs = append(r.cfgs, cfg)
		if err != nil {
			return nil, err
		}
		return fakePDF, nil
	})
}

func testSource() deck.StaticSource {
	return deck.StaticSource{
		"party": {Name: "party", Title: "Party Taboo", Cards: []deck.Card{
			{ID: 1, Term: "Beach", Forbidden: []string{"Sand", "Sea"}},
			{ID: 2, Term: "Guitar", Forbidden: []string{"Strings", "Music"}},
		}},
		"empty": {Name: "empty"},
	}
}

func newTestServer(genErr error) (*Server, *recorder) {
	rec := &recorder{}
	logger := log.New(io.Discard)
	return New(testSource(), rec.generator(genErr), WithLogger(logger)), rec
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v (%q)", err, w.Body.String())
	}
	return body
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(nil)
	w := do(t, s, http.MethodGet, "/healthz", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Version == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestListDecks(t *testing.T) {
	s, _ := newTestServer(nil)
	w := do(t, s, http.MethodGet, "/v1/decks", "")

	var body decksResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if strings.Join(body.Decks, ",") != "empty,party" {
		t.Errorf("decks = %v", body.Decks)
	}
}

func TestGetDeck(t *testing.T) {
	s, _ := newTestServer(nil)
	w := do(t, s, http.MethodGet, "/v1/decks/party", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var d deck.Deck
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if d.Title != "Party Taboo" || d.Len() != 2 {
		t.Errorf("deck = %+v", d)
	}
}

func TestDeckPDF(t *testing.T) {
	s, rec := newTestServer(nil)
	w := do(t, s, http.MethodGet, "/v1/decks/party/cards.pdf", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	h := w.Header()
	if got := h.Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := h.Get("Content-Disposition"); got != `attachment; filename="party.pdf"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if got := h.Get("Content-Length"); got != strconv.Itoa(len(fakePDF)) {
		t.Errorf("Content-Length = %q, want %d", got, len(fakePDF))
	}
	if w.Body.String() != string(fakePDF) {
		t.Errorf("body = %q", w.Body.String())
	}
	if len(rec.cfgs) != 1 || rec.cfgs[0] != layout.DefaultConfig() {
		t.Errorf("generator config = %+v, want defaults", rec.cfgs)
	}
}

func TestDeckPDFQueryOverrides(t *testing.T) {
	s, rec := newTestServer(nil)
	w := do(t, s, http.MethodGet, "/v1/decks/party/cards.pdf?paper=a4&columns=2&rows=2&duplex=short&margin=0", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	cfg := rec.cfgs[0]
	if cfg.Paper != layout.A4 || cfg.Columns != 2 || cfg.Rows != 2 || cfg.Duplex != layout.DuplexShortEdge || cfg.Margin != 0 {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.CardWidth != layout.DefaultCardWidth {
		t.Errorf("CardWidth = %g, want default", cfg.CardWidth)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		genErr   error
		wantCode int
		wantErr  errors.Code
	}{
		{"unknown deck", "GET", "/v1/decks/nope", "", nil, 404, errors.ErrCodeDeckNotFound},
		{"unknown deck pdf", "GET", "/v1/decks/nope/cards.pdf", "", nil, 404, errors.ErrCodeDeckNotFound},
		{"bad deck name", "GET", "/v1/decks/a..b", "", nil, 400, errors.ErrCodeInvalidDeckName},
		{"bad columns", "GET", "/v1/decks/party/cards.pdf?columns=two", "", nil, 400, errors.ErrCodeInvalidInput},
		{"grid too large", "GET", "/v1/decks/party/cards.pdf?columns=12", "", nil, 400, errors.ErrCodeInvalidConfiguration},
		{"zero rows", "GET", "/v1/decks/party/cards.pdf?rows=0", "", nil, 400, errors.ErrCodeInvalidConfiguration},
		{"bad paper", "GET", "/v1/decks/party/cards.pdf?paper=b5", "", nil, 400, errors.ErrCodeInvalidConfiguration},
		{"bad duplex", "GET", "/v1/decks/party/cards.pdf?duplex=diagonal", "", nil, 400, errors.ErrCodeInvalidConfiguration},
		{"renderer failure", "GET", "/v1/decks/party/cards.pdf", "", errors.New(errors.ErrCodeRenderFailed, "boom"), 500, errors.ErrCodeRenderFailed},
		{"plain failure", "GET", "/v1/decks/party/cards.pdf", "", stderrors.New("disk on fire"), 500, errors.ErrCodeInternal},
		{"unknown route", "GET", "/v2/anything", "", nil, 404, errors.ErrCodeNotFound},
		{"render bad json", "POST", "/v1/render", "{", nil, 400, errors.ErrCodeInvalidInput},
		{"render no deck", "POST", "/v1/render", `{"config":{}}`, nil, 400, errors.ErrCodeInvalidInput},
		{"render empty term", "POST", "/v1/render", `{"deck":{"name":"x","cards":[{"term":""}]}}`, nil, 400, errors.ErrCodeInvalidCard},
		{"render bad config", "POST", "/v1/render", `{"deck":[{"term":"A"}],"config":{"columns":-1}}`, nil, 400, errors.ErrCodeInvalidConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(tt.genErr)
			w := do(t, s, tt.method, tt.target, tt.body)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.wantCode, w.Body.String())
			}
			body := decodeError(t, w)
			if body.Code != string(tt.wantErr) {
				t.Errorf("code = %q, want %q", body.Code, tt.wantErr)
			}
			if body.RequestID == "" || body.RequestID != w.Header().Get(HeaderRequestID) {
				t.Errorf("request_id = %q, header = %q", body.RequestID, w.Header().Get(HeaderRequestID))
			}
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	s, _ := newTestServer(stderrors.New("secret path /etc/x"))
	w := do(t, s, "GET", "/v1/decks/party/cards.pdf", "")

	if strings.Contains(w.Body.String(), "secret") {
		t.Errorf("internal cause leaked: %s", w.Body.String())
	}
}

func TestRender(t *testing.T) {
	s, rec := newTestServer(nil)
	body := `{
		"deck": {"name": "posted", "cards": [
			{"targetWord": "Lung Sliding", "tabooWords": ["Pleura"]},
			{"term": "B-lines", "forbidden": ["Comet"]}
		]},
		"config": {"columns": 1, "rows": 2, "landscape": true}
	}`
	w := do(t, s, http.MethodPost, "/v1/render", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="posted.pdf"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	d := rec.decks[0]
	if d.Len() != 2 || d.Cards[0].Term != "Lung Sliding" {
		t.Errorf("deck = %+v", d)
	}
	cfg := rec.cfgs[0]
	if cfg.Columns != 1 || cfg.Rows != 2 || cfg.Paper.Width != layout.Letter.Height {
		t.Errorf("config = %+v", cfg)
	}
}

func TestRenderBodyLimit(t *testing.T) {
	rec := &recorder{}
	s := New(testSource(), rec.generator(nil), WithLogger(log.New(io.Discard)), WithMaxBodyBytes(16))
	w := do(t, s, http.MethodPost, "/v1/render", `{"deck":[{"term":"far too long for the limit"}]}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(rec.decks) != 0 {
		t.Error("generator should not run")
	}
}

func TestWithDefaults(t *testing.T) {
	rec := &recorder{}
	def := layout.DefaultConfig()
	def.Columns, def.Rows = 2, 2
	s := New(testSource(), rec.generator(nil), WithLogger(log.New(io.Discard)), WithDefaults(def))
	do(t, s, http.MethodGet, "/v1/decks/party/cards.pdf", "")

	if rec.cfgs[0] != def {
		t.Errorf("config = %+v, want %+v", rec.cfgs[0], def)
	}
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(nil)

	w := do(t, s, http.MethodGet, "/healthz", "")
	if _, err := uuid.Parse(w.Header().Get(HeaderRequestID)); err != nil {
		t.Errorf("generated id is not a uuid: %q", w.Header().Get(HeaderRequestID))
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	w = httptest.NewRecorder()
	s.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != id {
		t.Errorf("request id = %q, want incoming %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	w = httptest.NewRecorder()
	s.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got == "<script>" {
		t.Error("malformed incoming id should be replaced")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(nil)
	w := do(t, s, http.MethodDelete, "/v1/decks", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestPanicRecovery(t *testing.T) {
	gen := pipeline.GeneratorFunc(func(context.Context, deck.Deck, layout.PageConfig) ([]byte, error) {
		panic("renderer exploded")
	})
	s := New(testSource(), gen, WithLogger(log.New(io.Discard)))
	w := do(t, s, http.MethodGet, "/v1/decks/party/cards.pdf", "")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if body := decodeError(t, w); body.Code != string(errors.ErrCodeInternal) {
		t.Errorf("code = %q", body.Code)
	}
}

func TestEmptyDeckStillRenders(t *testing.T) {
	s, rec := newTestServer(nil)
	w := do(t, s, http.MethodGet, "/v1/decks/empty/cards.pdf", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if rec.decks[0].Len() != 0 {
		t.Errorf("deck = %+v", rec.decks[0])
	}
}
