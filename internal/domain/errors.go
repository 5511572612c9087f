package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates invalid parameters or a resource missing a
	// required field.
	ErrConfiguration = errors.New("configuration error")

	// ErrEmptyInput indicates that no sentence survived filtering, so there is
	// no batch to return.
	ErrEmptyInput = errors.New("empty input")

	// ErrDataConsistency indicates a resource that contradicts itself, e.g. a
	// vocabulary term without a frequency.
	ErrDataConsistency = errors.New("data consistency error")
)

// StrategyError reports which strategy failed and on how many sentences.
type StrategyError struct {
	Strategy  string
	Sentences int
	Err       error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s strategy on %d sentences: %v", e.Strategy, e.Sentences, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }

// Fail wraps err in a StrategyError.
func Fail(strategy string, sentences int, err error) error {
	return &StrategyError{Strategy: strategy, Sentences: sentences, Err: err}
}

// Failf builds a StrategyError around a sentinel with extra detail.
func Failf(strategy string, sentences int, sentinel error, format string, args ...any) error {
	return Fail(strategy, sentences, fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...))
}
