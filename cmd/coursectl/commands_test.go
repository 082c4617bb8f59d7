package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"course-catalog-go/internal/auth"
	"course-catalog-go/internal/courses"
	"course-catalog-go/internal/fixtures"
	"course-catalog-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	query  string
	auth   string
	body   string
}

type stubAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (s *stubAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, recordedRequest{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.RawQuery,
		auth:   r.Header.Get("Authorization"),
		body:   string(body),
	})
	s.mu.Unlock()

	catalog := fixtures.MustLoad()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/api/courses":
		_ = json.NewEncoder(w).Encode(model.Payload[model.Course]{Payload: catalog.Courses})
	case r.URL.Path == "/api/courses/12" && r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(catalog.CoursesByID()[12])
	case r.URL.Path == "/api/courses/12" && r.Method == http.MethodPut:
		var changes model.CoursePatch
		_ = json.Unmarshal(body, &changes)
		_ = json.NewEncoder(w).Encode(changes.Apply(catalog.CoursesByID()[12]))
	case r.URL.Path == "/api/lessons":
		_ = json.NewEncoder(w).Encode(model.Payload[model.Lesson]{Payload: catalog.FindLessonsForCourse(12)[:3]})
	default:
		http.Error(w, "no course found", http.StatusNotFound)
	}
}

func (s *stubAPI) recorded() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedRequest(nil), s.requests...)
}

func run(t *testing.T, api *stubAPI, args ...string) (string, error) {
	t.Helper()

	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", ts.URL}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	api := &stubAPI{}

	out, err := run(t, api, "list", "--category", "ADVANCED")
	require.NoError(t, err)

	var listed []model.Course
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.NotEmpty(t, listed)
	for _, c := range listed {
		assert.Equal(t, model.Advanced, c.Category)
	}

	_, err = run(t, &stubAPI{}, "list", "--category", "EXPERT")
	assert.ErrorContains(t, err, "unknown category")
}

func TestGetCommand(t *testing.T) {
	out, err := run(t, &stubAPI{}, "get", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Angular Testing Course")

	_, err = run(t, &stubAPI{}, "get", "99")
	var httpErr *courses.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)

	_, err = run(t, &stubAPI{}, "get", "twelve")
	assert.ErrorContains(t, err, "invalid course id")
}

func TestSaveCommandSendsOnlyGivenFields(t *testing.T) {
	api := &stubAPI{}

	out, err := run(t, api, "--token", "abc", "save", "12", "--description", "Testing Course", "--long-description", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Testing Course")

	require.Len(t, api.recorded(), 1)
	put := api.recorded()[0]
	assert.Equal(t, http.MethodPut, put.method)
	assert.Equal(t, "/api/courses/12", put.path)
	assert.Equal(t, "Bearer abc", put.auth)
	assert.JSONEq(t, `{"titles":{"description":"Testing Course"}}`, put.body)
}

func TestSaveCommandKeepsOtherTitle(t *testing.T) {
	api := &stubAPI{}

	_, err := run(t, api, "save", "12", "--description", "Testing Course")
	require.NoError(t, err)

	require.Len(t, api.recorded(), 2)
	assert.Equal(t, http.MethodGet, api.recorded()[0].method)

	var sent model.CoursePatch
	require.NoError(t, json.Unmarshal([]byte(api.recorded()[1].body), &sent))
	require.NotNil(t, sent.Titles)
	assert.Equal(t, "Testing Course", sent.Titles.Description)
	assert.Equal(t, fixtures.MustLoad().CoursesByID()[12].Titles.LongDescription, sent.Titles.LongDescription)
}

func TestSaveCommandRejectsEmptyPatch(t *testing.T) {
	api := &stubAPI{}

	_, err := run(t, api, "save", "12")
	assert.ErrorContains(t, err, "nothing to save")
	assert.Empty(t, api.recorded())

	_, err = run(t, api, "save", "12", "--category", "EXPERT")
	assert.ErrorContains(t, err, "unknown category")
}

func TestLessonsCommand(t *testing.T) {
	api := &stubAPI{}

	out, err := run(t, api, "lessons", "12", "--filter", "okok", "--sort", "desc", "--page", "1", "--size", "3")
	require.NoError(t, err)

	require.Len(t, api.recorded(), 1)
	assert.Equal(t, "/api/lessons", api.recorded()[0].path)
	for _, param := range []string{"courseId=12", "filter=okok", "sortOrder=desc", "pageNumber=1", "pageSize=3"} {
		assert.Contains(t, strings.Split(api.recorded()[0].query, "&"), param)
	}

	var lessons []model.Lesson
	require.NoError(t, json.Unmarshal([]byte(out), &lessons))
	assert.Len(t, lessons, 3)
}

func TestTokenCommand(t *testing.T) {
	out, err := run(t, &stubAPI{}, "token", "--key", "secret", "--subject", "editor")
	require.NoError(t, err)

	claims, err := auth.ParseToken("secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "editor", claims.Subject)

	_, err = run(t, &stubAPI{}, "token")
	assert.ErrorContains(t, err, "--key is required")
}
