package utils

import (
	"encoding/json"
	"fmt"
)

// Marshaller converts values of T to and from the string form they are persisted in.
type Marshaller[T any] interface {
	Marshal(value T) (string, error)
	Unmarshal(data string) (T, error)
}

type JSONMarshaller[T any] struct{}

var _ Marshaller[any] = JSONMarshaller[any]{}

func NewJSONMarshaller[T any]() JSONMarshaller[T] {
	return JSONMarshaller[T]{}
}

func (JSONMarshaller[T]) Marshal(value T) (string, error) {
	bytes, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %T: %w", value, err)
	}
	return string(bytes), nil
}

func (JSONMarshaller[T]) Unmarshal(data string) (T, error) {
	var value T
	if err := json.Unmarshal([]byte(data), &value); err != nil {
		return value, fmt.Errorf("failed to unmarshal %T: %w", value, err)
	}
	return value, nil
}
