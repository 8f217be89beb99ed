package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// validationMessages flattens gin binding errors into per-field messages
// ("Brand is required"). Non-validator errors collapse to a single generic
// entry.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request body"}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fe.Field()+" is required")
		case "email":
			messages = append(messages, "Invalid email format")
		case "gt":
			messages = append(messages, fe.Field()+" must be greater than "+fe.Param())
		case "min":
			messages = append(messages, fe.Field()+" must be at least "+fe.Param()+" characters")
		default:
			messages = append(messages, fe.Field()+" is invalid")
		}
	}
	return messages
}
