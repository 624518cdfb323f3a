package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"review_corpus/internal/app"
	"review_corpus/internal/domain"
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/reviews", h.listReviews)
	s.mux.Get("/v1/reviews/{id}", h.getReview)
	s.mux.Get("/v1/summary", h.summary)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON answers 304 when the client already holds this version.
func writeJSON(w http.ResponseWriter, r *http.Request, v any, what string) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "encode "+what)
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("what", what).Msg("failed to write body")
	}
}

func (h *Handlers) getReview(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when it is set (e.g. an escaped "/"), leaving the param escaped
	id := chi.URLParam(r, "id")
	var err error
	if r.URL.RawPath != "" {
		id, err = url.PathUnescape(id)
	}
	if err != nil || id == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "review id must be a non-empty path segment")
		return
	}
	rv, err := h.Q.GetReview(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "review "+strconv.Quote(id)+" not found")
		return
	}
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	writeJSON(w, r, rv, "review")
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := domain.SearchQuery{
		Contains: qs.Get("q"),
		IDs:      qs["id"],
		Limit:    app.DefaultLimit,
	}
	if v := qs.Get("ci"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid ci", "ci must be a boolean")
			return
		}
		q.IgnoreCase = b
	}
	if v := qs.Get("empty"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid empty", "empty must be a boolean")
			return
		}
		q.Empty = &b
	}
	if ls := qs.Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > app.MaxLimit {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		q.Limit = l
	}
	if c := qs.Get("cursor"); c != "" {
		q.Cursor = &c
	}

	out, err := h.Q.Search(r.Context(), q)
	if errors.Is(err, app.ErrBadCursor) {
		writeProblem(w, http.StatusBadRequest, "Invalid cursor", "cursor is not one this server issued")
		return
	}
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	writeJSON(w, r, out, "reviews")
}

func (h *Handlers) summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Q.Summary(r.Context()), "summary")
}
