// Package courses is the HTTP client for the course catalog API.
package courses

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"course-catalog-go/internal/model"
	log "github.com/sirupsen/logrus"
)

// HTTPError is returned when the server answers with a non-2xx status. The
// status line and body are kept exactly as received.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	StatusText string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, e.StatusText, e.Body)
}

type Option func(*Service)

func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) {
		s.http = c
	}
}

// WithToken sets the bearer token sent with course updates.
func WithToken(token string) Option {
	return func(s *Service) {
		s.token = token
	}
}

type Service struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, opts ...Option) *Service {
	s := &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) FindAllCourses(ctx context.Context) ([]model.Course, error) {
	var envelope model.Payload[model.Course]
	if err := s.do(ctx, http.MethodGet, "/api/courses", nil, nil, &envelope); err != nil {
		return nil, fmt.Errorf("finding all courses: %w", err)
	}
	return envelope.Payload, nil
}

func (s *Service) FindCourseByID(ctx context.Context, id int) (model.Course, error) {
	var course model.Course
	if err := s.do(ctx, http.MethodGet, "/api/courses/"+strconv.Itoa(id), nil, nil, &course); err != nil {
		return model.Course{}, fmt.Errorf("finding course %d: %w", id, err)
	}
	return course, nil
}

// SaveCourse sends changes as the request body and returns the server's merged course.
func (s *Service) SaveCourse(ctx context.Context, id int, changes model.CoursePatch) (model.Course, error) {
	var course model.Course
	if err := s.do(ctx, http.MethodPut, "/api/courses/"+strconv.Itoa(id), nil, changes, &course); err != nil {
		return model.Course{}, fmt.Errorf("saving course %d: %w", id, err)
	}
	return course, nil
}

func (s *Service) FindLessons(ctx context.Context, courseID int, filter, sortOrder string, pageNumber, pageSize int) ([]model.Lesson, error) {
	params := url.Values{}
	params.Set("courseId", strconv.Itoa(courseID))
	params.Set("filter", filter)
	params.Set("sortOrder", sortOrder)
	params.Set("pageNumber", strconv.Itoa(pageNumber))
	params.Set("pageSize", strconv.Itoa(pageSize))

	var envelope model.Payload[model.Lesson]
	if err := s.do(ctx, http.MethodGet, "/api/lessons", params, nil, &envelope); err != nil {
		return nil, fmt.Errorf("finding lessons of course %d: %w", courseID, err)
	}
	return envelope.Payload, nil
}

func (s *Service) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	target := s.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPut && s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	log.WithFields(log.Fields{"method": method, "url": target}).Debug("sending catalog request")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			Body:       string(raw),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}

	return nil
}

// statusText returns the reason phrase of the status line as sent by the server.
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}
