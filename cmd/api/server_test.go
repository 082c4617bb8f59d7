package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"course-catalog-go/internal/auth"
	"course-catalog-go/internal/courses"
	"course-catalog-go/internal/database"
	"course-catalog-go/internal/fixtures"
	"course-catalog-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T, jwtKey string) *httptest.Server {
	t.Helper()

	db := database.NewMemoryClient(fixtures.MustLoad())
	server := NewServer(0, db, jwtKey)

	ts := httptest.NewServer(server.Routes())
	t.Cleanup(func() {
		ts.Close()
		db.Close()
	})

	return ts
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var httpErr *courses.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected an HTTP error, got %v", err)
	return httpErr.StatusCode
}

func TestListCourses(t *testing.T) {
	ts := setupServer(t, "")
	svc := courses.New(ts.URL)

	actual, err := svc.FindAllCourses(context.Background())
	require.NoError(t, err)
	assert.Len(t, actual, len(fixtures.MustLoad().Courses))
}

func TestGetCourse(t *testing.T) {
	ts := setupServer(t, "")
	svc := courses.New(ts.URL)

	course, err := svc.FindCourseByID(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, fixtures.MustLoad().CoursesByID()[12], course)

	_, err = svc.FindCourseByID(context.Background(), 999)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestGetCourseInvalidID(t *testing.T) {
	ts := setupServer(t, "")

	resp, err := http.Get(ts.URL + "/api/courses/abc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaveCourse(t *testing.T) {
	ts := setupServer(t, "")
	svc := courses.New(ts.URL)
	original := fixtures.MustLoad().CoursesByID()[12]

	saved, err := svc.SaveCourse(context.Background(), 12, model.CoursePatch{Titles: &model.Titles{Description: "Testing Course"}})
	require.NoError(t, err)
	assert.Equal(t, "Testing Course", saved.Titles.Description)
	assert.Equal(t, original.IconURL, saved.IconURL)

	reloaded, err := svc.FindCourseByID(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, saved, reloaded)
}

func TestSaveCourseErrors(t *testing.T) {
	ts := setupServer(t, "")
	svc := courses.New(ts.URL)
	expert := model.Category("EXPERT")

	_, err := svc.SaveCourse(context.Background(), 999, model.CoursePatch{})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	_, err = svc.SaveCourse(context.Background(), 12, model.CoursePatch{Category: &expert})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/courses/12", strings.NewReader("{"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaveCourseRequiresToken(t *testing.T) {
	ts := setupServer(t, "secret")
	changes := model.CoursePatch{Titles: &model.Titles{Description: "Testing Course"}}

	_, err := courses.New(ts.URL).SaveCourse(context.Background(), 12, changes)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = courses.New(ts.URL, courses.WithToken("forged")).SaveCourse(context.Background(), 12, changes)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	token, err := auth.IssueToken("secret", "editor", time.Minute)
	require.NoError(t, err)

	saved, err := courses.New(ts.URL, courses.WithToken(token)).SaveCourse(context.Background(), 12, changes)
	require.NoError(t, err)
	assert.Equal(t, "Testing Course", saved.Titles.Description)

	_, err = courses.New(ts.URL).FindCourseByID(context.Background(), 12)
	assert.NoError(t, err, "reads stay open when a key is configured")
}

func TestFindLessons(t *testing.T) {
	ts := setupServer(t, "")
	svc := courses.New(ts.URL)

	lessons, err := svc.FindLessons(context.Background(), 12, "", "desc", 1, 3)
	require.NoError(t, err)

	ids := []int{}
	for _, l := range lessons {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []int{126, 125, 124}, ids)

	lessons, err = svc.FindLessons(context.Background(), 12, "okok", "desc", 1, 3)
	require.NoError(t, err)
	assert.Empty(t, lessons)
}

func TestFindLessonsBadRequest(t *testing.T) {
	ts := setupServer(t, "")

	for _, query := range []string{
		"",
		"?courseId=abc",
		"?courseId=12&pageSize=many",
		"?courseId=12&pageNumber=first",
	} {
		resp, err := http.Get(ts.URL + "/api/lessons" + query)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
	}
}

func TestRequestIDHeader(t *testing.T) {
	ts := setupServer(t, "")

	resp, err := http.Get(ts.URL + "/api/courses")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/courses", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "fixed-id")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "fixed-id", resp.Header.Get(requestIDHeader))
}

func TestFindLessonsHugePageNumber(t *testing.T) {
	ts := setupServer(t, "")

	resp, err := http.Get(ts.URL + "/api/lessons?courseId=12&pageNumber=3074457345618258603&pageSize=3")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope model.Payload[model.Lesson]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Empty(t, envelope.Payload)
}

func TestFindLessonsFilterIsLiteral(t *testing.T) {
	ts := setupServer(t, "")

	lessons, err := courses.New(ts.URL).FindLessons(context.Background(), 12, "_", "asc", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, lessons)
}
