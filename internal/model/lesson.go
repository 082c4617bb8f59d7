package model

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultPageSize = 3
	MaxPageSize     = 100
)

type Lesson struct {
	ID          int    `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Duration    string `json:"duration" yaml:"duration"`
	SeqNo       int    `json:"seqNo" yaml:"seqNo"`
	CourseID    int    `json:"courseId" yaml:"courseId"`
}

// LessonQuery selects one page of a course's lessons. PageNumber is zero based.
type LessonQuery struct {
	CourseID   int
	Filter     string
	SortOrder  string
	PageNumber int
	PageSize   int
}

// ParseLessonQuery reads filter, sortOrder, pageNumber and pageSize from
// params. Missing paging values fall back to the Normalize defaults.
func ParseLessonQuery(courseID int, params url.Values) (LessonQuery, error) {
	pageNumber, err := optionalInt(params.Get("pageNumber"))
	if err != nil {
		return LessonQuery{}, fmt.Errorf("invalid pageNumber: %q", params.Get("pageNumber"))
	}

	pageSize, err := optionalInt(params.Get("pageSize"))
	if err != nil {
		return LessonQuery{}, fmt.Errorf("invalid pageSize: %q", params.Get("pageSize"))
	}

	q := LessonQuery{
		CourseID:   courseID,
		Filter:     params.Get("filter"),
		SortOrder:  params.Get("sortOrder"),
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}

	return q.Normalize(), nil
}

// Values is the inverse of ParseLessonQuery.
func (q LessonQuery) Values() url.Values {
	params := url.Values{}
	if q.Filter != "" {
		params.Set("filter", q.Filter)
	}
	params.Set("sortOrder", q.SortOrder)
	params.Set("pageNumber", strconv.Itoa(q.PageNumber))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	return params
}

func optionalInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// Normalize fills in defaults and clamps out of range values. PageNumber is
// capped so that Offset never overflows.
func (q LessonQuery) Normalize() LessonQuery {
	q.Filter = strings.TrimSpace(q.Filter)
	q.SortOrder = strings.ToLower(q.SortOrder)
	if q.SortOrder != SortDesc {
		q.SortOrder = SortAsc
	}
	switch {
	case q.PageSize <= 0:
		q.PageSize = DefaultPageSize
	case q.PageSize > MaxPageSize:
		q.PageSize = MaxPageSize
	}
	switch {
	case q.PageNumber < 0:
		q.PageNumber = 0
	case q.PageNumber > math.MaxInt/q.PageSize:
		q.PageNumber = math.MaxInt / q.PageSize
	}
	return q
}

func (q LessonQuery) Offset() int {
	return q.PageNumber * q.PageSize
}
