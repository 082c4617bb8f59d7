package database

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"course-catalog-go/internal/fixtures"
	"course-catalog-go/internal/model"
)

type memoryClient struct {
	mu      sync.RWMutex
	courses map[int]model.Course
	lessons []model.Lesson
}

// NewMemoryClient serves the catalog from memory. Updates live as long as the
// client does.
func NewMemoryClient(catalog fixtures.Catalog) Client {
	lessons := make([]model.Lesson, len(catalog.Lessons))
	copy(lessons, catalog.Lessons)

	return &memoryClient{
		courses: catalog.CoursesByID(),
		lessons: lessons,
	}
}

func (c *memoryClient) Close() {}

func (c *memoryClient) GetCourses() ([]model.Course, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	courses := make([]model.Course, 0, len(c.courses))
	for _, course := range c.courses {
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].SeqNo != courses[j].SeqNo {
			return courses[i].SeqNo < courses[j].SeqNo
		}
		return courses[i].ID < courses[j].ID
	})

	return courses, nil
}

func (c *memoryClient) GetCourseByID(id int) (model.Course, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	course, ok := c.courses[id]
	if !ok {
		return model.Course{}, fmt.Errorf("no course found with id %v: %w", id, ErrNotFound)
	}

	return course, nil
}

func (c *memoryClient) UpdateCourse(id int, changes model.CoursePatch) (model.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	course, ok := c.courses[id]
	if !ok {
		return model.Course{}, fmt.Errorf("no course found with id %v: %w", id, ErrNotFound)
	}

	course = changes.Apply(course)
	c.courses[id] = course

	return course, nil
}

func (c *memoryClient) FindLessons(q model.LessonQuery) ([]model.Lesson, error) {
	q = q.Normalize()
	filter := strings.ToLower(q.Filter)

	c.mu.RLock()
	var matched []model.Lesson
	for _, lesson := range c.lessons {
		if lesson.CourseID != q.CourseID {
			continue
		}
		if !strings.Contains(strings.ToLower(lesson.Description), filter) {
			continue
		}
		matched = append(matched, lesson)
	}
	c.mu.RUnlock()

	// Same order as the postgres client: seq_no in the requested direction, then id.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].SeqNo != matched[j].SeqNo {
			if q.SortOrder == model.SortDesc {
				return matched[i].SeqNo > matched[j].SeqNo
			}
			return matched[i].SeqNo < matched[j].SeqNo
		}
		return matched[i].ID < matched[j].ID
	})

	start := q.Offset()
	if start >= len(matched) {
		return []model.Lesson{}, nil
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], nil
}
