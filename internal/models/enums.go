package models

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidCompanyMode  = errors.New("invalid CompanyMode value")
	ErrInvalidRating       = errors.New("invalid Rating value")
	ErrInvalidTaskStatus   = errors.New("invalid TaskStatus value")
	ErrInvalidTaskPriority = errors.New("invalid TaskPriority value")
)

type CompanyMode int

const (
	CompanyModeInactive CompanyMode = 0
	CompanyModeActive   CompanyMode = 1
)

var companyModeNames = map[string]CompanyMode{
	"INACTIVE": CompanyModeInactive,
	"ACTIVE":   CompanyModeActive,
}

func (m CompanyMode) Valid() bool {
	return m == CompanyModeInactive || m == CompanyModeActive
}

type Rating int

const (
	RatingNotRated Rating = iota
	RatingOne
	RatingTwo
	RatingThree
	RatingFour
	RatingFive
)

var ratingNames = map[string]Rating{
	"NOT_RATED": RatingNotRated,
	"ONE":       RatingOne,
	"TWO":       RatingTwo,
	"THREE":     RatingThree,
	"FOUR":      RatingFour,
	"FIVE":      RatingFive,
}

func (r Rating) Valid() bool {
	return r >= RatingNotRated && r <= RatingFive
}

type TaskStatus int

const (
	TaskStatusNotStarted TaskStatus = iota
	TaskStatusInProgress
	TaskStatusCompleted
)

var taskStatusNames = map[string]TaskStatus{
	"NOT_STARTED": TaskStatusNotStarted,
	"IN_PROGRESS": TaskStatusInProgress,
	"COMPLETED":   TaskStatusCompleted,
}

func (s TaskStatus) Valid() bool {
	return s >= TaskStatusNotStarted && s <= TaskStatusCompleted
}

type TaskPriority int

const (
	TaskPriorityLow TaskPriority = iota
	TaskPriorityMedium
	TaskPriorityHigh
)

var taskPriorityNames = map[string]TaskPriority{
	"LOW":    TaskPriorityLow,
	"MEDIUM": TaskPriorityMedium,
	"HIGH":   TaskPriorityHigh,
}

func (p TaskPriority) Valid() bool {
	return p >= TaskPriorityLow && p <= TaskPriorityHigh
}

// ParseCompanyMode accepts "1", "active", "ACTIVE" and so on.
func ParseCompanyMode(raw string) (CompanyMode, error) {
	return parseEnum(raw, companyModeNames, CompanyMode.Valid, ErrInvalidCompanyMode)
}

func ParseRating(raw string) (Rating, error) {
	return parseEnum(raw, ratingNames, Rating.Valid, ErrInvalidRating)
}

func ParseTaskStatus(raw string) (TaskStatus, error) {
	return parseEnum(raw, taskStatusNames, TaskStatus.Valid, ErrInvalidTaskStatus)
}

func ParseTaskPriority(raw string) (TaskPriority, error) {
	return parseEnum(raw, taskPriorityNames, TaskPriority.Valid, ErrInvalidTaskPriority)
}

func parseEnum[T ~int](raw string, names map[string]T, valid func(T) bool, errInvalid error) (T, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if v := T(n); valid(v) {
			return v, nil
		}
		return 0, errInvalid
	}
	if v, ok := names[strings.ToUpper(raw)]; ok {
		return v, nil
	}
	return 0, errInvalid
}
