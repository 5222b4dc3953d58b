package isa

import (
	"fmt"
	"slices"
)

var conventions = map[string]*Convention{
	riscv32.Name:   riscv32,
	riscv64.Name:   riscv64,
	riscv32SF.Name: riscv32SF,
	x64.Name:       x64,
}

// UnknownConventionError reports a Lookup of an unregistered convention name.
type UnknownConventionError struct {
	Name string
}

func (e *UnknownConventionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("unknown target convention %q", e.Name)
}

// Lookup returns the convention registered under name.
func Lookup(name string) (*Convention, error) {
	c, ok := conventions[name]
	if !ok {
		return nil, &UnknownConventionError{Name: name}
	}
	return c, nil
}

// Names returns the registered convention names, sorted.
func Names() []string {
	names := make([]string, 0, len(conventions))
	for name := range conventions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
