package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/billcollect/billcollect/internal/shared"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	// numeric(10,2) upper bound
	maxMoney = decimal.New(1, 8)

	oneofParams = regexp.MustCompile(`'[^']*'|\S+`)
)

// Validator returns the process-wide request validator.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if a, ok := field.Interface().(shared.Amount); ok {
				if !a.Bounded() {
					return "NaN"
				}
				return a.Decimal.String()
			}
			return nil
		}, shared.Amount{})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if ts, ok := field.Interface().(shared.Timestamp); ok {
				return ts.Time
			}
			return nil
		}, shared.Timestamp{})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if n, ok := field.Interface().(shared.Nullable[shared.Amount]); ok && n.Value != nil {
				if !n.Value.Bounded() {
					return "NaN"
				}
				return n.Value.Decimal.String()
			}
			return nil
		}, shared.Nullable[shared.Amount]{})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if n, ok := field.Interface().(shared.Nullable[string]); ok && n.Value != nil {
				return *n.Value
			}
			return nil
		}, shared.Nullable[string]{})
		_ = v.RegisterValidation("money", validateMoney)
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		validate = v
	})
	return validate
}

func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	// numeric(10,2) holds nothing at exponent 9 or above; very negative
	// exponents make Round expensive.
	if exp := d.Exponent(); exp > 8 || exp < -2*shared.MoneyScale-8 {
		return false
	}
	return !d.IsNegative() && d.LessThan(maxMoney) && d.Equal(d.Round(shared.MoneyScale))
}

// Validate checks a request struct and reports violations as a
// *shared.ValidationError keyed by JSON field name.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return &shared.ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "oneof":
		opts := oneofParams.FindAllString(fe.Param(), -1)
		for i := range opts {
			opts[i] = strings.Trim(opts[i], "'")
		}
		return "must be one of: " + strings.Join(opts, ", ")
	case "email":
		return "must be a valid email address"
	case "money":
		return "must be a non-negative amount with at most two decimals"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
