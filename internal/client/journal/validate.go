package journal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/happiestbaby/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct tags of s and folds every violation into a
// single ErrInvalidEntry.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrInvalidEntry, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldMessage(e))
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidEntry, strings.Join(msgs, "; "))
}

func fieldMessage(e validator.FieldError) string {
	field := e.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_without":
		return fmt.Sprintf("%s or %s is required", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", field, e.Param(), e.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s value(s)", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, e.Tag())
	}
}
