package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidDateRange    = errors.New("end date precedes start date")
	ErrUpstream            = errors.New("generative api failure")
	ErrUnparseableResponse = errors.New("could not parse the API response as JSON")
	ErrMalformedDay        = errors.New("malformed day object")
	ErrUnsupportedProvider = errors.New("unsupported generative provider")
)

// InvalidRangeError is returned before any upstream call when the trip ends before it starts.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end %s is before start %s", FormatDate(e.End), FormatDate(e.Start))
}

func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidDateRange
}

// UnparseableResponseError keeps the raw reply so operators can see what the model sent.
type UnparseableResponseError struct {
	RawText string
	Causes  []error
}

func (e *UnparseableResponseError) Error() string {
	if len(e.Causes) == 0 {
		return ErrUnparseableResponse.Error()
	}
	msgs := make([]string, 0, len(e.Causes))
	for _, cause := range e.Causes {
		msgs = append(msgs, cause.Error())
	}
	return fmt.Sprintf("%s (%s)", ErrUnparseableResponse.Error(), strings.Join(msgs, "; "))
}

func (e *UnparseableResponseError) Is(target error) bool {
	return target == ErrUnparseableResponse
}

func (e *UnparseableResponseError) Unwrap() []error {
	return e.Causes
}

// MalformedDayError marks a single recovered object that is not a day record.
type MalformedDayError struct {
	Index  int
	Reason string
}

func (e *MalformedDayError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("malformed day object at index %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("malformed day object: %s", e.Reason)
}

func (e *MalformedDayError) Is(target error) bool {
	return target == ErrMalformedDay
}
