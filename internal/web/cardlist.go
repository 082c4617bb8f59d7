package web

import (
	"fmt"
	"io"

	"course-catalog-go/internal/model"
)

// CardList renders one card per course, in the order given.
type CardList struct {
	templates *Templates
}

func NewCardList(t *Templates) *CardList {
	return &CardList{templates: t}
}

func (c *CardList) Render(w io.Writer, courses []model.Course) error {
	if err := c.templates.Execute(w, "cardlist", courses); err != nil {
		return fmt.Errorf("rendering card list: %w", err)
	}
	return nil
}
