package web

import (
	"context"
	"fmt"
	"io"

	"course-catalog-go/internal/model"
)

// CourseReader is the part of the courses service the course page needs.
type CourseReader interface {
	FindCourseByID(ctx context.Context, id int) (model.Course, error)
	FindLessons(ctx context.Context, courseID int, filter, sortOrder string, pageNumber, pageSize int) ([]model.Lesson, error)
}

type CourseView struct {
	Course  model.Course
	Lessons []model.Lesson
	Query   model.LessonQuery
}

func (v CourseView) HasPrev() bool {
	return v.Query.PageNumber > 0
}

// HasNext assumes more lessons may follow whenever the page came back full.
func (v CourseView) HasNext() bool {
	return len(v.Lessons) == v.Query.PageSize
}

func (v CourseView) PageLabel() int {
	return v.Query.PageNumber + 1
}

func (v CourseView) PrevURL() string {
	q := v.Query
	q.PageNumber--
	return v.pageURL(q)
}

func (v CourseView) NextURL() string {
	q := v.Query
	q.PageNumber++
	return v.pageURL(q)
}

// SortURL flips the sort order and goes back to the first page.
func (v CourseView) SortURL() string {
	q := v.Query
	q.PageNumber = 0
	q.SortOrder = model.SortDesc
	if v.Query.SortOrder == model.SortDesc {
		q.SortOrder = model.SortAsc
	}
	return v.pageURL(q)
}

func (v CourseView) pageURL(q model.LessonQuery) string {
	return fmt.Sprintf("/courses/%d?%s", v.Course.ID, q.Values().Encode())
}

type CoursePage struct {
	courses   CourseReader
	templates *Templates
}

func NewCoursePage(courses CourseReader, t *Templates) *CoursePage {
	return &CoursePage{courses: courses, templates: t}
}

func (p *CoursePage) Load(ctx context.Context, q model.LessonQuery) (CourseView, error) {
	q = q.Normalize()

	course, err := p.courses.FindCourseByID(ctx, q.CourseID)
	if err != nil {
		return CourseView{}, fmt.Errorf("loading course: %w", err)
	}

	lessons, err := p.courses.FindLessons(ctx, q.CourseID, q.Filter, q.SortOrder, q.PageNumber, q.PageSize)
	if err != nil {
		return CourseView{}, fmt.Errorf("loading lessons: %w", err)
	}

	return CourseView{Course: course, Lessons: lessons, Query: q}, nil
}

func (p *CoursePage) Render(w io.Writer, view CourseView) error {
	if err := p.templates.Execute(w, "course", view); err != nil {
		return fmt.Errorf("rendering course: %w", err)
	}
	return nil
}
