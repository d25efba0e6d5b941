package operations

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Harshverma1208/smartech/internal/fault"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput runs struct validation and converts the first violation into a
// validation fault with a field-level message, so bad input never reaches the
// store.
func checkInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return fault.Validation(violationMessage(verrs[0]))
	}
	return fault.Validation(err.Error())
}

func violationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}
