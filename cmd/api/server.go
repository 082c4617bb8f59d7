package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"course-catalog-go/internal/database"
	"course-catalog-go/internal/model"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	port   int
	db     database.Client
	jwtKey string
	http   *http.Server
}

func NewServer(port int, db database.Client, jwtKey string) *Server {
	s := &Server{
		port:   port,
		db:     db,
		jwtKey: jwtKey,
	}

	address := "0.0.0.0"
	s.http = &http.Server{
		Addr:    fmt.Sprintf("%v:%v", address, port),
		Handler: s.Routes(),
	}

	return s
}

func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/api/courses", s.listCourses).Methods("GET")
	router.HandleFunc("/api/courses/{id}", s.getCourse).Methods("GET")
	router.HandleFunc("/api/courses/{id}", s.authenticate(s.saveCourse)).Methods("PUT")
	router.HandleFunc("/api/lessons", s.findLessons).Methods("GET")

	router.Use(requestLogger)

	return router
}

func (s *Server) Run() error {
	log.Printf("listening requests at %v", s.http.Addr)

	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.db.GetCourses()
	if err != nil {
		log.Errorf("listing courses: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, model.Payload[model.Course]{Payload: courses})
}

func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	id, err := courseIDFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	course, err := s.db.GetCourseByID(id)
	if err != nil {
		writeDBError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (s *Server) saveCourse(w http.ResponseWriter, r *http.Request) {
	id, err := courseIDFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var changes model.CoursePatch
	err = json.NewDecoder(r.Body).Decode(&changes)

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if changes.Category != nil && !changes.Category.Valid() {
		http.Error(w, fmt.Sprintf("unknown category: %q", *changes.Category), http.StatusBadRequest)
		return
	}

	course, err := s.db.UpdateCourse(id, changes)
	if err != nil {
		writeDBError(w, err)
		return
	}

	log.WithField("course_id", id).Info("course saved")

	writeJSON(w, http.StatusOK, course)
}

func (s *Server) findLessons(w http.ResponseWriter, r *http.Request) {
	q, err := lessonQueryFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lessons, err := s.db.FindLessons(q)
	if err != nil {
		log.Errorf("finding lessons: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, model.Payload[model.Lesson]{Payload: lessons})
}

func writeDBError(w http.ResponseWriter, err error) {
	if errors.Is(err, database.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	log.Error(err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Errorf("encoding response: %v", err)
	}
}
