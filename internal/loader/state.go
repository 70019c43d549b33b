package loader

import (
	"travel-discovery/internal/common/errors"
)

// Status names which variant of State is active.
type Status string

const (
	// StatusIdle means no fetch has been attempted yet.
	StatusIdle Status = "idle"

	// StatusLoading means the fetch is in flight.
	StatusLoading Status = "loading"

	// StatusLoaded means the fetch succeeded and the body decoded.
	StatusLoaded Status = "loaded"

	// StatusFailed means the attempt ended in one of the classified errors.
	StatusFailed Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no transition can leave s.
func (s Status) IsTerminal() bool {
	return s == StatusLoaded || s == StatusFailed
}

// State is a snapshot of a loader's progress. Value is meaningful only when
// Status is StatusLoaded; Message and Err only when it is StatusFailed.
type State[T any] struct {
	Status  Status
	Value   T
	Message string
	Err     *errors.LoadError
}

func idle[T any]() State[T] {
	return State[T]{Status: StatusIdle}
}

func loading[T any]() State[T] {
	return State[T]{Status: StatusLoading}
}

func loaded[T any](v T) State[T] {
	return State[T]{Status: StatusLoaded, Value: v}
}

func failed[T any](err *errors.LoadError) State[T] {
	return State[T]{Status: StatusFailed, Message: err.Error(), Err: err}
}

// Code returns the failure code, or "" when the state is not Failed.
func (s State[T]) Code() errors.ErrorCode {
	if s.Err == nil {
		return ""
	}
	return s.Err.Code
}
