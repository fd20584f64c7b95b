package model

import "fmt"

// CompletionStatus is the per-day, per-goal log state. A missing log entry
// is equivalent to StatusPending.
type CompletionStatus string

const (
	StatusCompleted CompletionStatus = "completed"
	StatusSkipped   CompletionStatus = "skipped"
	StatusPending   CompletionStatus = "pending"
)

func ParseStatus(s string) (CompletionStatus, error) {
	switch CompletionStatus(s) {
	case StatusCompleted, StatusSkipped, StatusPending:
		return CompletionStatus(s), nil
	}
	return "", fmt.Errorf("unknown completion status %q", s)
}

func (s CompletionStatus) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}
