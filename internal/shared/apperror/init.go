package apperror

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	// MaxAmount is the largest value a NUMERIC(14,2) column holds.
	MaxAmount = decimal.RequireFromString("999999999999.99")
)

func Init() {
	// Gin's own engine is used for JSON bodies bound in handlers.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
	Validator()
}

// Validator returns the shared validator used by services.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		register(validate)
	})
	return validate
}

func register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	// amount: a non-negative decimal with at most two places, up to MaxAmount.
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		if err != nil {
			return false
		}
		if d.IsNegative() || d.GreaterThan(MaxAmount) {
			return false
		}
		return d.Equal(d.Truncate(2))
	})
}
