package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"alfredoptarigan/enterprise-ats/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names so messages match the request body.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation("ats_role", func(fl validator.FieldLevel) bool {
		return models.IsValidUserRole(fl.Field().String())
	})
	_ = v.RegisterValidation("job_status", func(fl validator.FieldLevel) bool {
		return models.IsValidJobStatus(fl.Field().String())
	})

	return v
}

// validateRequest returns a client facing message for the first failing field, or "".
func validateRequest(req interface{}) string {
	err := validate.Struct(req)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request payload"
	}

	fe := verrs[0]
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "ats_role":
		return "role must be one of Admin, Recruiter, Hiring Manager"
	case "job_status":
		return "status must be Open or Closed"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
