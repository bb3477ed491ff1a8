package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Task field limits.
const (
	TitleMinLength       = 3
	TitleMaxLength       = 150
	DescriptionMaxLength = 1000
)

// Violation messages reported for task fields.
const (
	MsgTitleRequired  = "The task title is required."
	MsgTitleMin       = "The task title must be at least 3 characters."
	MsgTitleMax       = "The task title may not be greater than 150 characters."
	MsgDescriptionMax = "The description may not be greater than 1000 characters."
	MsgStatusInvalid  = "The status must be one of: pending, in progress, or done."
)

// Task is a unit of work tracked by the API.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask builds an unsaved task. An empty status defaults to pending;
// anything else goes through NormalizeStatus.
func NewTask(title string, description *string, status string) (*Task, error) {
	task := &Task{
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      StatusPending,
	}

	verr := NewValidationErrors()
	if msg := TitleViolation(task.Title); msg != "" {
		verr.Add("title", msg)
	}
	if description != nil {
		if msg := DescriptionViolation(*description); msg != "" {
			verr.Add("description", msg)
		}
	}
	if strings.TrimSpace(status) != "" {
		normalized, err := NormalizeStatus(status)
		if err != nil {
			verr.Add("status", MsgStatusInvalid)
		} else {
			task.Status = normalized
		}
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the task against the field limits and the status invariant.
func (t *Task) Validate() error {
	verr := NewValidationErrors()
	if msg := TitleViolation(t.Title); msg != "" {
		verr.Add("title", msg)
	}
	if t.Description != nil {
		if msg := DescriptionViolation(*t.Description); msg != "" {
			verr.Add("description", msg)
		}
	}
	if !t.Status.IsValid() {
		verr.Add("status", MsgStatusInvalid)
	}
	return verr.Err()
}

// IsDone reports whether the task is finished.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// TitleViolation returns the message describing why title is invalid,
// or "" when it is acceptable. Lengths are counted in runes.
func TitleViolation(title string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	switch {
	case n == 0:
		return MsgTitleRequired
	case n < TitleMinLength:
		return MsgTitleMin
	case n > TitleMaxLength:
		return MsgTitleMax
	}
	return ""
}

// DescriptionViolation returns the message describing why description is
// invalid, or "" when it is acceptable.
func DescriptionViolation(description string) string {
	if utf8.RuneCountInString(description) > DescriptionMaxLength {
		return MsgDescriptionMax
	}
	return ""
}
