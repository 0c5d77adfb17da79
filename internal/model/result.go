package model

// State is the discriminant of a Result.
type State string

const (
	StateError State = "error"
	StateEmpty State = "empty"
	StateReady State = "ready"
)

// Result is what every reducer returns: an error, an explicit empty marker,
// or ready data. Reducers never panic or return bare errors to callers.
type Result[T any] struct {
	Kind    State  `json:"kind"`
	Message string `json:"message,omitempty"`
	Data    *T     `json:"data,omitempty"`

	// Err keeps the typed error for errors.As/errors.Is; it is not serialized.
	Err error `json:"-"`
}

// Ready wraps output data.
func Ready[T any](data T) Result[T] {
	return Result[T]{Kind: StateReady, Data: &data}
}

// Empty marks a result with nothing to render. reason is usually the
// reducer package's empty-input sentinel.
func Empty[T any](reason error) Result[T] {
	r := Result[T]{Kind: StateEmpty, Err: reason}
	if reason != nil {
		r.Message = reason.Error()
	}
	return r
}

// Failed marks a structural failure (wrong data shape or bad configuration).
func Failed[T any](err error) Result[T] {
	return Result[T]{Kind: StateError, Message: err.Error(), Err: err}
}

func (r Result[T]) IsReady() bool { return r.Kind == StateReady }
func (r Result[T]) IsEmpty() bool { return r.Kind == StateEmpty }
func (r Result[T]) IsError() bool { return r.Kind == StateError }

// Erase drops the type parameter so heterogeneous widget results can share
// one slice.
func (r Result[T]) Erase() Result[any] {
	out := Result[any]{Kind: r.Kind, Message: r.Message, Err: r.Err}
	if r.Data != nil {
		var v any = *r.Data
		out.Data = &v
	}
	return out
}
