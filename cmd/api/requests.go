package main

import (
	"fmt"
	"net/http"
	"strconv"

	"course-catalog-go/internal/model"
	"github.com/gorilla/mux"
)

func courseIDFromPath(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, fmt.Errorf("invalid course id: %q", mux.Vars(r)["id"])
	}
	return id, nil
}

// lessonQueryFromRequest reads the lessons search parameters. courseId is
// required; the paging parameters fall back to the query defaults.
func lessonQueryFromRequest(r *http.Request) (model.LessonQuery, error) {
	params := r.URL.Query()

	courseID, err := strconv.Atoi(params.Get("courseId"))
	if err != nil {
		return model.LessonQuery{}, fmt.Errorf("invalid courseId: %q", params.Get("courseId"))
	}

	return model.ParseLessonQuery(courseID, params)
}
