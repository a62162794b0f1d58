package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// errBadJSON is returned by decode when the body is not a JSON object
var errBadJSON = errors.New("bad json")

// decode reads a JSON body into v and runs its validate tags. Validation
// failures come back as a single readable message.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(v); err != nil {
		return errBadJSON
	}
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var details strings.Builder
	for _, fe := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch fe.Tag() {
		case "required":
			fmt.Fprintf(&details, "%s is required", fe.Field())
		case "oneof":
			fmt.Fprintf(&details, "%s must be one of [%s]", fe.Field(), fe.Param())
		case "len":
			fmt.Fprintf(&details, "%s must be %s characters", fe.Field(), fe.Param())
		case "max":
			if fe.Kind() == reflect.String {
				fmt.Fprintf(&details, "%s must be at most %s characters", fe.Field(), fe.Param())
			} else {
				fmt.Fprintf(&details, "%s must be at most %s", fe.Field(), fe.Param())
			}
		default:
			fmt.Fprintf(&details, "%s failed %s validation", fe.Field(), fe.Tag())
		}
	}
	return errors.New(details.String())
}
