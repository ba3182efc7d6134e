package model

// Field wraps a partial-update value with a presence flag so callers can
// tell an omitted field apart from one explicitly set (possibly to null,
// when T is a pointer type).
type Field[T any] struct {
	Set   bool
	Value T
}

func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}
