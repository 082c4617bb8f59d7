package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"course-catalog-go/internal/model"
)

// CoursesFinder is the part of the courses service the home page needs.
type CoursesFinder interface {
	FindAllCourses(ctx context.Context) ([]model.Course, error)
}

type Tab struct {
	Key     string
	Label   string
	Courses []model.Course
}

// tabOrder fixes which categories get a tab and in what order.
var tabOrder = []struct {
	category model.Category
	label    string
}{
	{model.Beginner, "Beginners"},
	{model.Advanced, "Advanced"},
}

func tabKey(c model.Category) string {
	return strings.ToLower(string(c))
}

// Partition buckets courses by category and returns one tab per non-empty
// bucket. Courses keep their relative order inside a tab.
func Partition(courses []model.Course) []Tab {
	var tabs []Tab
	for _, t := range tabOrder {
		var bucket []model.Course
		for _, course := range courses {
			if course.Category == t.category {
				bucket = append(bucket, course)
			}
		}
		if len(bucket) == 0 {
			continue
		}
		tabs = append(tabs, Tab{Key: tabKey(t.category), Label: t.label, Courses: bucket})
	}
	return tabs
}

type HomeView struct {
	Tabs     []Tab
	Selected string
}

// Select returns a copy of v with the tab named key active, falling back to
// the first tab.
func (v HomeView) Select(key string) HomeView {
	v.Selected = ""
	for _, t := range v.Tabs {
		if t.Key == key {
			v.Selected = key
			return v
		}
	}
	if len(v.Tabs) > 0 {
		v.Selected = v.Tabs[0].Key
	}
	return v
}

// Active returns the selected tab, or nil when there are no tabs.
func (v HomeView) Active() *Tab {
	for i := range v.Tabs {
		if v.Tabs[i].Key == v.Selected {
			return &v.Tabs[i]
		}
	}
	return nil
}

func (v HomeView) Labels() []string {
	labels := make([]string, 0, len(v.Tabs))
	for _, t := range v.Tabs {
		labels = append(labels, t.Label)
	}
	return labels
}

type Home struct {
	courses   CoursesFinder
	cards     *CardList
	templates *Templates
}

func NewHome(courses CoursesFinder, t *Templates) *Home {
	return &Home{courses: courses, cards: NewCardList(t), templates: t}
}

// Load fetches every course once and builds the tabs.
func (h *Home) Load(ctx context.Context) (HomeView, error) {
	courses, err := h.courses.FindAllCourses(ctx)
	if err != nil {
		return HomeView{}, fmt.Errorf("loading home: %w", err)
	}

	return HomeView{Tabs: Partition(courses)}.Select(""), nil
}

// Render writes the page. Only the active tab's card list is rendered.
func (h *Home) Render(w io.Writer, view HomeView) error {
	page := struct {
		HomeView
		Cards template.HTML
	}{HomeView: view}

	if active := view.Active(); active != nil {
		var buf bytes.Buffer
		if err := h.cards.Render(&buf, active.Courses); err != nil {
			return err
		}
		page.Cards = template.HTML(buf.String())
	}

	if err := h.templates.Execute(w, "home", page); err != nil {
		return fmt.Errorf("rendering home: %w", err)
	}
	return nil
}
