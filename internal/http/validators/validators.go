package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"gig-marketplace.com/gig-marketplace/internal/constants"
	apperrors "gig-marketplace.com/gig-marketplace/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	registerCatalog(v)
	return v
}

// registerCatalog exposes every enumeration in constants as a validation tag.
func registerCatalog(v *validator.Validate) {
	oneOf := func(set []string) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return constants.OneOf(fl.Field().String(), set)
		}
	}

	_ = v.RegisterValidation("category", oneOf(constants.Categories))
	_ = v.RegisterValidation("experience_level", oneOf(constants.ExperienceLevels))
	_ = v.RegisterValidation("payment_type", oneOf(constants.PaymentTypes))
	_ = v.RegisterValidation("payment_method", oneOf(constants.PaymentMethods))
	_ = v.RegisterValidation("proficiency", oneOf(constants.Proficiencies))
	_ = v.RegisterValidation("preferred_time", oneOf(constants.PreferredTimes))
	_ = v.RegisterValidation("urgency", func(fl validator.FieldLevel) bool {
		return constants.Urgency(fl.Field().String()).Valid()
	})
}

// Struct validates a request body and reports the first failing field as a
// validation error.
func Struct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.Validation("%s", describe(fieldErrs[0]))
	}
	return apperrors.Validation("%s", err.Error())
}

func describe(fe validator.FieldError) string {
	field := jsonPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s long", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters", field, fe.Param())
	case "latitude", "longitude":
		return fmt.Sprintf("%s is not a valid %s", field, fe.Tag())
	default:
		return fmt.Sprintf("%s has an unsupported value %v", field, fe.Value())
	}
}

// jsonPath drops the struct name from a namespace such as
// "CreateGigRequest.payment.paymentType".
func jsonPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
