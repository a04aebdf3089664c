package course

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson kinds. Exactly one payload variant is meaningful per lesson.
const (
	LessonVideo      = "VIDEO"
	LessonText       = "TEXT"
	LessonQuiz       = "QUIZ"
	LessonAssignment = "ASSIGNMENT"
)

// Lesson is an atomic content unit inside a section. The Kind column selects
// which payload variant the JSON column holds; consumers must go through the
// typed accessors below instead of reading Payload directly.
type Lesson struct {
	gorm.Model
	SectionID   uint   `json:"section_id" gorm:"index:idx_section_lesson_order,unique;not null"`
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order" gorm:"column:position;index:idx_section_lesson_order,unique;not null"`
	Kind        string `json:"kind" gorm:"not null"`
	IsPreview   bool   `json:"is_preview" gorm:"default:false"`

	Payload datatypes.JSON `json:"payload"`
}

// VideoPayload carries a media reference plus its resolved metadata.
type VideoPayload struct {
	MediaRef        string `json:"media_ref"` // raw URL or asset public ID
	Provider        string `json:"provider"`  // uploaded-asset, youtube, vimeo, external-other
	DurationMinutes int    `json:"duration_minutes"`
}

// TextPayload is free-text lesson content.
type TextPayload struct {
	Content string `json:"content"`
}

// QuizQuestion is a single question inside a quiz payload.
// CorrectAnswerIndex must satisfy 0 <= index < len(Options).
type QuizQuestion struct {
	Prompt             string   `json:"prompt"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
}

// QuizPayload is an ordered list of questions.
type QuizPayload struct {
	Questions []QuizQuestion `json:"questions"`
}

// AssignmentPayload is free-text assignment metadata with no cross-field rules.
type AssignmentPayload struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	DueDate         string `json:"due_date"`
	Points          int    `json:"points"`
	Instructions    string `json:"instructions"`
	GradingCriteria string `json:"grading_criteria"`
}

// ValidKind reports whether k is one of the four lesson kinds.
func ValidKind(k string) bool {
	switch k {
	case LessonVideo, LessonText, LessonQuiz, LessonAssignment:
		return true
	}
	return false
}

// SetPayload marshals the given payload variant into the JSON column.
func (l *Lesson) SetPayload(payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	l.Payload = datatypes.JSON(raw)
	return nil
}

// Video decodes the payload as a video variant.
func (l *Lesson) Video() (VideoPayload, error) {
	var p VideoPayload
	if l.Kind != LessonVideo {
		return p, fmt.Errorf("lesson %d is %s, not VIDEO", l.ID, l.Kind)
	}
	err := json.Unmarshal(l.Payload, &p)
	return p, err
}

// Text decodes the payload as a text variant.
func (l *Lesson) Text() (TextPayload, error) {
	var p TextPayload
	if l.Kind != LessonText {
		return p, fmt.Errorf("lesson %d is %s, not TEXT", l.ID, l.Kind)
	}
	err := json.Unmarshal(l.Payload, &p)
	return p, err
}

// Quiz decodes the payload as a quiz variant.
func (l *Lesson) Quiz() (QuizPayload, error) {
	var p QuizPayload
	if l.Kind != LessonQuiz {
		return p, fmt.Errorf("lesson %d is %s, not QUIZ", l.ID, l.Kind)
	}
	err := json.Unmarshal(l.Payload, &p)
	return p, err
}

// Assignment decodes the payload as an assignment variant.
func (l *Lesson) Assignment() (AssignmentPayload, error) {
	var p AssignmentPayload
	if l.Kind != LessonAssignment {
		return p, fmt.Errorf("lesson %d is %s, not ASSIGNMENT", l.ID, l.Kind)
	}
	err := json.Unmarshal(l.Payload, &p)
	return p, err
}
