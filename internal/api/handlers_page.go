// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metadata"
	"github.com/tomtom215/cinematch/internal/validation"
)

//go:embed templates/index.html
var templateFS embed.FS

const pageTemplateName = "index.html"

// Page copy.
const (
	PageHeading     = "🎬 Movie Recommender System Using Machine Learning"
	PageSelectLabel = "🎥 Type or select a movie from the dropdown"
	PageButtonLabel = "Show Recommendation"

	msgLookupFailed     = "Something went wrong while fetching recommendations. Please try again."
	msgMetadataDegraded = "Movie details are temporarily unavailable; showing placeholders."
)

// pageView is the data rendered by templates/index.html.
type pageView struct {
	Heading     string
	SelectLabel string
	ButtonLabel string
	Titles      []string
	Selected    string
	Errors      []string
	Notice      string
	Cards       []metadata.Card
}

func parsePageTemplate() (*template.Template, error) {
	tmpl, err := template.New(pageTemplateName).ParseFS(templateFS, "templates/"+pageTemplateName)
	if err != nil {
		return nil, fmt.Errorf("api: parse page template: %w", err)
	}
	return tmpl, nil
}

// Index handles GET / and GET /?movie=<title>.
//
// Without a movie parameter it renders the selection form with the first
// title preselected. With one it renders up to K recommendation cards, or
// error banners when the title is unknown or has no neighbours. Unknown
// titles still answer 200 so the page always renders.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	titles := h.catalog.Titles()
	view := pageView{
		Heading:     PageHeading,
		SelectLabel: PageSelectLabel,
		ButtonLabel: PageButtonLabel,
		Titles:      titles,
	}
	if len(titles) > 0 {
		view.Selected = titles[0]
	}

	status := http.StatusOK
	if q := r.URL.Query(); q.Has("movie") {
		req := PageRequest{Movie: q.Get("movie")}
		view.Selected = req.Movie
		status = h.fillResults(r, req, &view)
	}

	h.renderPage(w, r, status, view)
}

// fillResults runs the lookup for a submitted title and returns the status to render with.
func (h *Handler) fillResults(r *http.Request, req PageRequest, view *pageView) int {
	if verr := validation.ValidateStruct(&req); verr != nil {
		view.Errors = []string{MsgMovieNotFound, MsgNoRecommendations}
		return http.StatusOK
	}

	recs, err := h.lookup(r.Context(), req.Movie)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		view.Errors = []string{MsgMovieNotFound, MsgNoRecommendations}
		return http.StatusOK
	case err != nil:
		logging.Ctx(r.Context()).Error().Err(err).Str("title", req.Movie).Msg("Recommendation lookup failed")
		view.Errors = []string{msgLookupFailed}
		return http.StatusInternalServerError
	case len(recs) == 0:
		view.Errors = []string{MsgNoRecommendations}
		return http.StatusOK
	}

	view.Cards = h.cards(r.Context(), recs)
	for _, c := range view.Cards {
		if c.MetadataFallback {
			view.Notice = msgMetadataDegraded
			break
		}
	}
	return http.StatusOK
}

// renderPage executes the template into a buffer so a template failure
// never leaves a half-written page.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, view pageView) {
	var buf bytes.Buffer
	if err := h.page.ExecuteTemplate(&buf, pageTemplateName, view); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write page")
	}
}
