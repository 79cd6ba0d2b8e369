package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/deckweaver/deckweaver/internal/deck"
	"github.com/deckweaver/deckweaver/internal/export"
	"github.com/deckweaver/deckweaver/internal/render"
	"github.com/deckweaver/deckweaver/internal/theme"
)

// registerRoutes mounts the editing API under /api.
func (s *Server) registerRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/project", s.handleGetProject)
		r.Put("/project", s.handlePutProject)
		r.Get("/themes", s.handleThemes)
		r.Get("/export", s.handleExport)
		r.Post("/sync", s.handleSync)
		r.Get("/sync/status", s.handleSyncStatus)

		r.Route("/slides", func(r chi.Router) {
			r.Post("/", s.handleAddSlide)
			r.Post("/move", s.handleMoveSlide)
			r.Put("/{index}", s.handlePutSlide)
			r.Delete("/{index}", s.handleDeleteSlide)
			r.Post("/{index}/duplicate", s.handleDuplicateSlide)
			r.Post("/{index}/select", s.handleSelectSlide)
			r.Get("/{index}/render", s.handleRenderSlide)
		})
	})
}

// projectView is the GET /api/project response shape.
type projectView struct {
	Project  *deck.Project `json:"project"`
	Selected int           `json:"selected"`
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, projectView{
		Project:  s.live.State(),
		Selected: s.live.Selected(),
	})
}

func (s *Server) handlePutProject(w http.ResponseWriter, r *http.Request) {
	var p deck.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid project document: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.live.Replace(&p)
	s.queueSync()
	writeJSON(w, http.StatusOK, projectView{
		Project:  s.live.State(),
		Selected: s.live.Selected(),
	})
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, theme.Names())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := export.GenerateDocument(s.live.State())
	if err != nil {
		http.Error(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(doc))
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		http.Error(w, "sync is not configured", http.StatusServiceUnavailable)
		return
	}
	// The sync outlives this request; the request context dies as soon as
	// the 202 is written.
	go s.engine.PerformSync(context.WithoutCancel(r.Context()), s.live.State())
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	status := "disabled"
	if s.engine != nil {
		status = string(s.engine.Status())
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// addSlideRequest is the POST /api/slides body.
type addSlideRequest struct {
	Template deck.TemplateKind `json:"template"`
}

func (s *Server) handleAddSlide(w http.ResponseWriter, r *http.Request) {
	var req addSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !deck.KnownKind(req.Template) {
		http.Error(w, "unknown template kind", http.StatusBadRequest)
		return
	}
	s.live.AddSlide(req.Template)
	s.queueSync()
	writeJSON(w, http.StatusCreated, projectView{
		Project:  s.live.State(),
		Selected: s.live.Selected(),
	})
}

func (s *Server) handlePutSlide(w http.ResponseWriter, r *http.Request) {
	index, ok := slideIndex(w, r)
	if !ok {
		return
	}
	var slide deck.Slide
	if err := json.NewDecoder(r.Body).Decode(&slide); err != nil {
		http.Error(w, "invalid slide document: "+err.Error(), http.StatusBadRequest)
		return
	}

	var opErr error
	s.live.Batch(func() {
		if opErr = s.live.SetSlideData(index, slide.Data); opErr != nil {
			return
		}
		opErr = s.live.SetSlideColors(index, slide.Colors)
	})
	if opErr != nil {
		http.Error(w, opErr.Error(), http.StatusNotFound)
		return
	}
	s.queueSync()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSlide(w http.ResponseWriter, r *http.Request) {
	index, ok := slideIndex(w, r)
	if !ok {
		return
	}
	if err := s.live.DeleteSlide(index); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.queueSync()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateSlide(w http.ResponseWriter, r *http.Request) {
	index, ok := slideIndex(w, r)
	if !ok {
		return
	}
	if err := s.live.DuplicateSlide(index); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.queueSync()
	writeJSON(w, http.StatusCreated, projectView{
		Project:  s.live.State(),
		Selected: s.live.Selected(),
	})
}

// moveSlideRequest is the POST /api/slides/move body.
type moveSlideRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s *Server) handleMoveSlide(w http.ResponseWriter, r *http.Request) {
	var req moveSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.live.MoveSlide(req.From, req.To); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.queueSync()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelectSlide(w http.ResponseWriter, r *http.Request) {
	index, ok := slideIndex(w, r)
	if !ok {
		return
	}
	s.live.Select(index)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderSlide(w http.ResponseWriter, r *http.Request) {
	index, ok := slideIndex(w, r)
	if !ok {
		return
	}
	p := s.live.State()
	if index < 0 || index >= len(p.Slides) {
		http.Error(w, "slide index out of range", http.StatusNotFound)
		return
	}
	resolved, err := theme.ResolveColors(p.Theme)
	if err != nil {
		http.Error(w, "resolving theme: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(render.Slide(p.Slides[index], resolved)))
}

// slideIndex parses the {index} URL parameter.
func slideIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid slide index", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
