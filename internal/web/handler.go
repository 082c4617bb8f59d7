// Package web renders the course catalog as HTML pages on top of the courses
// service.
package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"course-catalog-go/internal/courses"
	"course-catalog-go/internal/model"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// CatalogService is everything the pages read from the catalog API.
type CatalogService interface {
	CoursesFinder
	CourseReader
}

type Handler struct {
	home   *Home
	course *CoursePage
	router *mux.Router
}

func NewHandler(svc CatalogService, t *Templates) *Handler {
	h := &Handler{
		home:   NewHome(svc, t),
		course: NewCoursePage(svc, t),
		router: mux.NewRouter(),
	}

	h.router.HandleFunc("/", h.showHome).Methods("GET")
	h.router.HandleFunc("/courses/{id}", h.showCourse).Methods("GET")

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) showHome(w http.ResponseWriter, r *http.Request) {
	view, err := h.home.Load(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	view = view.Select(r.URL.Query().Get("tab"))

	render(w, func(buf *bytes.Buffer) error { return h.home.Render(buf, view) })
}

func (h *Handler) showCourse(w http.ResponseWriter, r *http.Request) {
	q, err := courseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.course.Load(r.Context(), q)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	render(w, func(buf *bytes.Buffer) error { return h.course.Render(buf, view) })
}

func courseQuery(r *http.Request) (model.LessonQuery, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return model.LessonQuery{}, errors.New("invalid course id")
	}

	return model.ParseLessonQuery(id, r.URL.Query())
}

// render buffers the page so a template failure never leaves a half written response.
func render(w http.ResponseWriter, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		log.Errorf("rendering page: %v", err)
		http.Error(w, "rendering page failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf("writing page: %v", err)
	}
}

// writeUpstreamError passes catalog API failures through with their status.
// Anything else is reported as a bad gateway.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var httpErr *courses.HTTPError
	if errors.As(err, &httpErr) {
		log.WithFields(log.Fields{
			"status": httpErr.StatusCode,
			"url":    httpErr.URL,
		}).Warn("catalog api request failed")
		http.Error(w, httpErr.StatusText+": "+httpErr.Body, httpErr.StatusCode)
		return
	}

	if errors.Is(err, context.Canceled) {
		return
	}

	log.Errorf("calling catalog api: %v", err)
	http.Error(w, err.Error(), http.StatusBadGateway)
}
