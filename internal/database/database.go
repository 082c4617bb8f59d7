package database

import (
	"database/sql"
	"errors"
	"fmt"

	"course-catalog-go/internal/model"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("not found")

// Client is the data provider behind the catalog API. It is satisfied by the
// PostgreSQL client and by the in-memory fixture client.
type Client interface {
	Close()
	GetCourses() ([]model.Course, error)
	GetCourseByID(id int) (model.Course, error)
	UpdateCourse(id int, changes model.CoursePatch) (model.Course, error)
	FindLessons(q model.LessonQuery) ([]model.Lesson, error)
}

type client struct {
	db *sql.DB
}

func NewClient(connStr string) (Client, error) {
	db, err := sql.Open("postgres", connStr)

	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &client{db: db}, nil
}

func (c *client) Close() {
	err := c.db.Close()
	if err != nil {
		log.Errorf("closing database: %v", err)
	}
}

const courseColumns = `id, description, long_description, icon_url, course_list_icon, category, lessons_count, seq_no`

type scanner interface {
	Scan(dest ...any) error
}

func scanCourse(row scanner) (model.Course, error) {
	var course model.Course
	err := row.Scan(
		&course.ID,
		&course.Titles.Description,
		&course.Titles.LongDescription,
		&course.IconURL,
		&course.CourseListIcon,
		&course.Category,
		&course.LessonsCount,
		&course.SeqNo,
	)
	return course, err
}

func (c *client) GetCourses() ([]model.Course, error) {
	rows, err := c.db.Query("SELECT " + courseColumns + " FROM courses ORDER BY seq_no, id")
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

func (c *client) GetCourseByID(id int) (model.Course, error) {
	query := "SELECT " + courseColumns + " FROM courses WHERE id = $1"
	course, err := scanCourse(c.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Course{}, fmt.Errorf("no course found with id %v: %w", id, ErrNotFound)
		}
		return model.Course{}, fmt.Errorf("querying for course by id: %w", err)
	}

	return course, nil
}

func (c *client) UpdateCourse(id int, changes model.CoursePatch) (model.Course, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return model.Course{}, fmt.Errorf("starting course update: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.Errorf("rolling back course update: %v", err)
		}
	}()

	query := "SELECT " + courseColumns + " FROM courses WHERE id = $1 FOR UPDATE"
	current, err := scanCourse(tx.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Course{}, fmt.Errorf("no course found with id %v: %w", id, ErrNotFound)
		}
		return model.Course{}, fmt.Errorf("locking course: %w", err)
	}

	updated := changes.Apply(current)

	_, err = tx.Exec(
		`UPDATE courses
		 SET description = $2, long_description = $3, icon_url = $4, course_list_icon = $5,
		     category = $6, lessons_count = $7, seq_no = $8
		 WHERE id = $1`,
		id,
		updated.Titles.Description,
		updated.Titles.LongDescription,
		updated.IconURL,
		updated.CourseListIcon,
		updated.Category,
		updated.LessonsCount,
		updated.SeqNo,
	)
	if err != nil {
		return model.Course{}, fmt.Errorf("updating course: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Course{}, fmt.Errorf("committing course update: %w", err)
	}

	return updated, nil
}

func (c *client) FindLessons(q model.LessonQuery) ([]model.Lesson, error) {
	q = q.Normalize()

	order := "ASC"
	if q.SortOrder == model.SortDesc {
		order = "DESC"
	}

	query := `SELECT id, description, duration, seq_no, course_id
		FROM lessons
		WHERE course_id = $1 AND strpos(lower(description), lower($2::text)) > 0
		ORDER BY seq_no ` + order + `, id
		LIMIT $3 OFFSET $4`

	rows, err := c.db.Query(query, q.CourseID, q.Filter, q.PageSize, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("querying lessons: %w", err)
	}
	defer rows.Close()

	lessons := []model.Lesson{}
	for rows.Next() {
		var lesson model.Lesson
		if err := rows.Scan(&lesson.ID, &lesson.Description, &lesson.Duration, &lesson.SeqNo, &lesson.CourseID); err != nil {
			return nil, fmt.Errorf("scanning lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}

// Seed inserts the given courses and lessons, leaving existing rows untouched.
func Seed(db *sql.DB, courses []model.Course, lessons []model.Lesson) error {
	for _, course := range courses {
		_, err := db.Exec(
			`INSERT INTO courses (`+courseColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (id) DO NOTHING`,
			course.ID,
			course.Titles.Description,
			course.Titles.LongDescription,
			course.IconURL,
			course.CourseListIcon,
			course.Category,
			course.LessonsCount,
			course.SeqNo,
		)
		if err != nil {
			return fmt.Errorf("seeding course %d: %w", course.ID, err)
		}
	}

	for _, lesson := range lessons {
		_, err := db.Exec(
			`INSERT INTO lessons (id, description, duration, seq_no, course_id)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO NOTHING`,
			lesson.ID, lesson.Description, lesson.Duration, lesson.SeqNo, lesson.CourseID,
		)
		if err != nil {
			return fmt.Errorf("seeding lesson %d: %w", lesson.ID, err)
		}
	}

	return nil
}
