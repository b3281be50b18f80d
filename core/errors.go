package core

import (
	"errors"
	"fmt"
	"strings"

	"nestsummary/stats"
	"nestsummary/storage"
)

// ShapeError reports a dimension mismatch between values and their names,
// true values or cost vectors.
type ShapeError = stats.ShapeError

// ValidationError reports inputs that are well shaped but not usable
// together, such as asking for an RMSE without true values.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Msg
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// UnexpectedOptionError lists option names outside the recognised set.
type UnexpectedOptionError struct {
	Names []string
}

func (e *UnexpectedOptionError) Error() string {
	return "unexpected options: " + strings.Join(e.Names, ", ")
}

var (
	ErrNotFound = storage.ErrNotFound
	ErrExists   = errors.New("table already exists")
)
