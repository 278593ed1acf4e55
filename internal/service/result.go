package service

type Status int

const (
	StatusSuccess Status = iota
	// StatusDegraded means the view can render without this resource and
	// should show a placeholder in its place.
	StatusDegraded
	// StatusFailed means the view cannot render at all.
	StatusFailed
	// StatusSkipped means the caller asked not to load the resource.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusDegraded:
		return "degraded"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Result is the outcome of one loader call.
type Result[T any] struct {
	Status Status
	Value  T
	Err    error
}

func Success[T any](v T) Result[T] {
	return Result[T]{Status: StatusSuccess, Value: v}
}

func Degraded[T any](err error) Result[T] {
	return Result[T]{Status: StatusDegraded, Err: err}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusFailed, Err: err}
}

func Skipped[T any]() Result[T] {
	return Result[T]{Status: StatusSkipped}
}

func (r Result[T]) OK() bool {
	return r.Status == StatusSuccess
}
