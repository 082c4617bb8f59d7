package model

type Category string

const (
	Beginner Category = "BEGINNER"
	Advanced Category = "ADVANCED"
)

func (c Category) Valid() bool {
	return c == Beginner || c == Advanced
}

type Titles struct {
	Description     string `json:"description" yaml:"description"`
	LongDescription string `json:"longDescription,omitempty" yaml:"longDescription"`
}

type Course struct {
	ID             int      `json:"id" yaml:"id"`
	Titles         Titles   `json:"titles" yaml:"titles"`
	IconURL        string   `json:"iconUrl" yaml:"iconUrl"`
	CourseListIcon string   `json:"courseListIcon,omitempty" yaml:"courseListIcon"`
	Category       Category `json:"category" yaml:"category"`
	LessonsCount   int      `json:"lessonsCount,omitempty" yaml:"lessonsCount"`
	SeqNo          int      `json:"seqNo" yaml:"seqNo"`
}

// CoursePatch is a sparse set of course changes. Only non-nil fields are sent
// on the wire and merged on the server.
type CoursePatch struct {
	Titles         *Titles   `json:"titles,omitempty"`
	IconURL        *string   `json:"iconUrl,omitempty"`
	CourseListIcon *string   `json:"courseListIcon,omitempty"`
	Category       *Category `json:"category,omitempty"`
	LessonsCount   *int      `json:"lessonsCount,omitempty"`
	SeqNo          *int      `json:"seqNo,omitempty"`
}

// Apply merges the patch into c. The merge is shallow: a patched Titles
// replaces the whole titles object.
func (p CoursePatch) Apply(c Course) Course {
	if p.Titles != nil {
		c.Titles = *p.Titles
	}
	if p.IconURL != nil {
		c.IconURL = *p.IconURL
	}
	if p.CourseListIcon != nil {
		c.CourseListIcon = *p.CourseListIcon
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.LessonsCount != nil {
		c.LessonsCount = *p.LessonsCount
	}
	if p.SeqNo != nil {
		c.SeqNo = *p.SeqNo
	}
	return c
}

func (p CoursePatch) IsEmpty() bool {
	return p == CoursePatch{}
}

// Payload is the response envelope used by list endpoints.
type Payload[T any] struct {
	Payload []T `json:"payload"`
}
