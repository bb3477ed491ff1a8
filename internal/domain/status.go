package domain

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TaskStatus is the closed set of states a task can be in.
// The zero value is not a valid status.
type TaskStatus uint8

// Canonical task statuses.
const (
	StatusPending TaskStatus = iota + 1
	StatusInProgress
	StatusDone
)

// ErrInvalidStatus is returned when a value cannot be mapped to a TaskStatus.
var ErrInvalidStatus = errors.New("invalid status value")

// InvalidStatusError carries the raw value that failed to normalize.
type InvalidStatusError struct {
	Raw string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidStatus.Error(), e.Raw)
}

// Unwrap allows errors.Is(err, ErrInvalidStatus).
func (e *InvalidStatusError) Unwrap() error {
	return ErrInvalidStatus
}

var (
	statusNames = map[TaskStatus]string{
		StatusPending:    "pending",
		StatusInProgress: "inProgress",
		StatusDone:       "done",
	}
	statusLabels = map[TaskStatus]string{
		StatusPending:    "Pending",
		StatusInProgress: "In Progress",
		StatusDone:       "Done",
	}
	statusByName = map[string]TaskStatus{
		"pending":    StatusPending,
		"inProgress": StatusInProgress,
		"done":       StatusDone,
	}
)

// Statuses returns every canonical status in declaration order.
func Statuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusDone}
}

// String returns the canonical wire/storage form ("pending", "inProgress", "done").
func (s TaskStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TaskStatus(%d)", uint8(s))
}

// Label returns the human readable form ("In Progress").
func (s TaskStatus) Label() string {
	return statusLabels[s]
}

// IsValid reports whether s is one of the canonical statuses.
func (s TaskStatus) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (s TaskStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, &InvalidStatusError{Raw: s.String()}
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It normalizes its input.
func (s *TaskStatus) UnmarshalText(text []byte) error {
	status, err := NormalizeStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// ParseStatus accepts only the exact canonical spelling. Used for values
// read back from storage, which must already be canonical.
func ParseStatus(raw string) (TaskStatus, error) {
	if s, ok := statusByName[raw]; ok {
		return s, nil
	}
	return 0, &InvalidStatusError{Raw: raw}
}

// NormalizeStatus maps free-form input such as "In Progress", "in_progress"
// or "DONE" onto a canonical status. Canonical input is returned as is.
func NormalizeStatus(raw string) (TaskStatus, error) {
	if s, ok := statusByName[raw]; ok {
		return s, nil
	}
	if s, ok := statusByName[camelize(raw)]; ok {
		return s, nil
	}
	return 0, &InvalidStatusError{Raw: raw}
}

// camelize lowercases the input and joins its words in lower camel case.
// Spaces, underscores and hyphens separate words.
func camelize(raw string) string {
	words := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(raw)), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '\t'
	})
	if len(words) == 0 {
		return ""
	}

	title := cases.Title(language.Und)
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(title.String(w))
	}
	return b.String()
}
