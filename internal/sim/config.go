package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is matched by every *ValidationError.
var ErrInvalidConfig = errors.New("invalid simulation config")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the immutable parameter set of one simulation. Build it with
// NewConfig; the zero value is not valid.
type Config struct {
	mu           float64
	sigma        float64
	stepsPerYear int
	numPaths     int
	initialPrice float64
}

// params carries the validated fields with their rules.
type params struct {
	StepsPerYear int     `validate:"gt=0"`
	NumPaths     int     `validate:"gt=0"`
	InitialPrice float64 `validate:"gt=0"`
	Volatility   float64 `validate:"gte=0"`
}

// FieldError describes one rejected parameter.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s=%v: %s", f.Field, f.Value, f.Reason)
}

// ValidationError is returned by NewConfig when parameters are out of domain.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfig validates and freezes the model parameters.
//
// mu is the annual drift, sigma the annual volatility (>= 0), stepsPerYear
// the number of rows in the price matrix (> 0), numPaths the number of
// columns (> 0) and initialPrice the starting price (> 0).
func NewConfig(mu, sigma float64, stepsPerYear, numPaths int, initialPrice float64) (Config, error) {
	p := params{
		StepsPerYear: stepsPerYear,
		NumPaths:     numPaths,
		InitialPrice: initialPrice,
		Volatility:   sigma,
	}
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Config{}, fmt.Errorf("validate config: %w", err)
		}
		out := &ValidationError{}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, FieldError{
				Field:  fieldNames[fe.Field()],
				Value:  fe.Value(),
				Reason: reason(fe),
			})
		}
		return Config{}, out
	}

	return Config{
		mu:           mu,
		sigma:        sigma,
		stepsPerYear: stepsPerYear,
		numPaths:     numPaths,
		initialPrice: initialPrice,
	}, nil
}

var fieldNames = map[string]string{
	"StepsPerYear": "stepsPerYear",
	"NumPaths":     "numPaths",
	"InitialPrice": "initialPrice",
	"Volatility":   "annualVolatility",
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must not be less than " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

func (c Config) AnnualMeanReturn() float64 { return c.mu }
func (c Config) AnnualVolatility() float64 { return c.sigma }
func (c Config) StepsPerYear() int         { return c.stepsPerYear }
func (c Config) NumPaths() int             { return c.numPaths }
func (c Config) InitialPrice() float64     { return c.initialPrice }

// Dt is one step expressed as a fraction of a year.
func (c Config) Dt() float64 { return 1 / float64(c.stepsPerYear) }

// Horizon is the simulated span in years. Row 0 is the start, so the last
// row sits stepsPerYear-1 steps later.
func (c Config) Horizon() float64 { return float64(c.stepsPerYear-1) * c.Dt() }
