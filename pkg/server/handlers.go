package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tabooprint/pkg/buildinfo"
	"github.com/matzehuels/tabooprint/pkg/deck"
	"github.com/matzehuels/tabooprint/pkg/errors"
	"github.com/matzehuels/tabooprint/pkg/layout"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

type decksResponse struct {
	Decks []string `json:"decks"`
}

type renderRequest struct {
	Deck   json.RawMessage `json:"deck"`
	Config layoutOverrides `json:"config"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version, Commit: buildinfo.Commit})
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	names, err := s.source.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, decksResponse{Decks: names})
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	d, err := s.loadDeck(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeckPDF(w http.ResponseWriter, r *http.Request) {
	d, err := s.loadDeck(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	o, err := overridesFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	cfg, err := o.apply(s.defaults)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.generate(w, r, d, cfg)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	var req renderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if len(req.Deck) == 0 {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request body has no deck"))
		return
	}
	d, err := deck.ParseJSON("deck", req.Deck)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := errors.ValidateDeckName(d.Name); err != nil {
		writeError(w, r, err)
		return
	}
	if err := d.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	cfg, err := req.Config.apply(s.defaults)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.generate(w, r, d, cfg)
}

func (s *Server) loadDeck(r *http.Request) (deck.Deck, error) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateDeckName(name); err != nil {
		return deck.Deck{}, err
	}
	return s.source.Load(r.Context(), name)
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, d deck.Deck, cfg layout.PageConfig) {
	pdf, err := s.gen.GenerateDocument(r.Context(), d, cfg)
	if err != nil {
		s.logger.Error("generate document", "deck", d.Name, "err", err,
			"request_id", RequestIDFromContext(r.Context()))
		writeError(w, r, err)
		return
	}
	writePDF(w, d.Name+".pdf", pdf)
}
