package web

import (
	"context"
	"fmt"
	"sync"

	"course-catalog-go/internal/model"
)

// coursesServiceSpy stands in for the courses service and records calls.
type coursesServiceSpy struct {
	mu sync.Mutex

	courses []model.Course
	lessons []model.Lesson
	err     error

	findAllCalls  int
	findByIDCalls []int
	lessonCalls   []model.LessonQuery
}

func (s *coursesServiceSpy) FindAllCourses(ctx context.Context) ([]model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findAllCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.courses, nil
}

func (s *coursesServiceSpy) FindCourseByID(ctx context.Context, id int) (model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findByIDCalls = append(s.findByIDCalls, id)
	if s.err != nil {
		return model.Course{}, s.err
	}
	for _, c := range s.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Course{}, fmt.Errorf("course %d not stubbed", id)
}

func (s *coursesServiceSpy) FindLessons(ctx context.Context, courseID int, filter, sortOrder string, pageNumber, pageSize int) ([]model.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessonCalls = append(s.lessonCalls, model.LessonQuery{
		CourseID:   courseID,
		Filter:     filter,
		SortOrder:  sortOrder,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	})
	if s.err != nil {
		return nil, s.err
	}
	return s.lessons, nil
}
