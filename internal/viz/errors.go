package viz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"labor-dashboard/internal/model"
)

// ErrEmptyInput marks a result with zero records to render.
var ErrEmptyInput = errors.New("no data for current filters")

// SchemaError reports declared fields that are absent from the sample record.
// It is distinct from an empty result: the data exists but has the wrong shape.
type SchemaError struct {
	Component string
	Missing   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: cannot render, fields missing from data: %s",
		e.Component, strings.Join(e.Missing, ", "))
}

// ConfigError collects every problem found in a widget configuration.
type ConfigError struct {
	Component string
	Err       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: invalid configuration: %v", e.Component, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// checker accumulates configuration problems for one component.
type checker struct {
	component string
	errs      *multierror.Error
}

func newChecker(component string) *checker {
	return &checker{component: component}
}

func (c *checker) require(cond bool, format string, args ...interface{}) {
	if !cond {
		c.errs = multierror.Append(c.errs, fmt.Errorf(format, args...))
	}
}

func (c *checker) field(name, what string) {
	c.require(strings.TrimSpace(name) != "", "%s field is required", what)
}

func (c *checker) bound(b model.Bound, what string) {
	c.require(b.Cap >= 0, "%s cap must not be negative, got %d", what, b.Cap)
	c.require(validOrder(b.Order), "%s order %q is not supported", what, b.Order)
}

func (c *checker) reducer(r model.ReducerKind, allowed ...model.ReducerKind) {
	if r == "" {
		return
	}
	for _, a := range allowed {
		if r == a {
			return
		}
	}
	c.require(false, "reducer %q is not supported", r)
}

func (c *checker) err() error {
	if c.errs == nil {
		return nil
	}
	c.errs.ErrorFormat = listFormat
	return &ConfigError{Component: c.component, Err: c.errs}
}

func listFormat(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}
