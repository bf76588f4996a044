package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnregisteredComponent matches every *UnregisteredComponentError.
	ErrUnregisteredComponent = errors.New("ecs: unregistered component")
	// ErrNotDense is returned when raw slice access is requested from a
	// sparse component table.
	ErrNotDense = errors.New("ecs: component is not dense")
)

// UnregisteredComponentError reports a Component that does not belong to
// the Instance it was used with.
type UnregisteredComponentError struct {
	Index    int
	Instance uint64
}

func (e *UnregisteredComponentError) Error() string {
	return fmt.Sprintf("ecs: component %d is not registered with instance %d", e.Index, e.Instance)
}

func (e *UnregisteredComponentError) Is(target error) bool {
	return target == ErrUnregisteredComponent
}
