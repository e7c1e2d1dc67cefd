package sqltask

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/sllt/sqltask/pkg/sqltask/datasource/sql"
)

var (
	ErrInvalidInput = errors.New("invalid task input")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Input is what the SQL tasks are invoked with.
type Input struct {
	Query  string     `json:"query" yaml:"query" validate:"required"`
	Params sql.Params `json:"-" yaml:"-"`

	// Limit is the maximum number of rows Query fetches; nil fetches all.
	Limit *int `json:"limit,omitempty" yaml:"limit,omitempty" validate:"omitempty,gte=0"`
}

func (in Input) validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}

// Limit returns a pointer to n, for use as Input.Limit.
func Limit(n int) *int {
	return &n
}
