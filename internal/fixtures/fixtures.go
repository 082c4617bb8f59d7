// Package fixtures holds the canned course catalog used by the in-memory data
// provider, the migration seeder and tests.
package fixtures

import (
	_ "embed"
	"fmt"
	"sort"

	"course-catalog-go/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Catalog struct {
	Courses []model.Course `yaml:"courses"`
	Lessons []model.Lesson `yaml:"lessons"`
}

// Load decodes the embedded catalog and checks its invariants.
func Load() (Catalog, error) {
	return Parse(catalogYAML)
}

func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decoding catalog: %w", err)
	}

	if err := c.validate(); err != nil {
		return Catalog{}, err
	}

	return c, nil
}

func (c Catalog) validate() error {
	courseIDs := make(map[int]bool, len(c.Courses))
	for _, course := range c.Courses {
		if courseIDs[course.ID] {
			return fmt.Errorf("duplicate course id: %d", course.ID)
		}
		if !course.Category.Valid() {
			return fmt.Errorf("course %d has unknown category: %q", course.ID, course.Category)
		}
		courseIDs[course.ID] = true
	}

	lessonIDs := make(map[int]bool, len(c.Lessons))
	for _, lesson := range c.Lessons {
		if lessonIDs[lesson.ID] {
			return fmt.Errorf("duplicate lesson id: %d", lesson.ID)
		}
		if !courseIDs[lesson.CourseID] {
			return fmt.Errorf("lesson %d references unknown course: %d", lesson.ID, lesson.CourseID)
		}
		lessonIDs[lesson.ID] = true
	}

	return nil
}

// CoursesByID returns the catalog keyed by course id.
func (c Catalog) CoursesByID() map[int]model.Course {
	out := make(map[int]model.Course, len(c.Courses))
	for _, course := range c.Courses {
		out[course.ID] = course
	}
	return out
}

// FindLessonsForCourse returns every lesson of a course ordered by sequence number.
func (c Catalog) FindLessonsForCourse(courseID int) []model.Lesson {
	var lessons []model.Lesson
	for _, lesson := range c.Lessons {
		if lesson.CourseID == courseID {
			lessons = append(lessons, lesson)
		}
	}
	sort.Slice(lessons, func(i, j int) bool {
		return lessons[i].SeqNo < lessons[j].SeqNo
	})
	return lessons
}

// MustLoad is Load for package initialization and tests.
func MustLoad() Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}
