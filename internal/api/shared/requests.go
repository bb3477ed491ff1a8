package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// ErrMalformedJSON is returned by DecodeJSON when the body is not valid JSON.
var ErrMalformedJSON = errors.New("malformed JSON body")

// ErrBodyTooLarge is returned by DecodeJSON when the body exceeds maxBodyBytes.
var ErrBodyTooLarge = errors.New("request body too large")

// maxBodyBytes bounds request bodies read by DecodeJSON.
const maxBodyBytes = 1 << 20

// Global validator instance for reuse. Field names are reported by their
// JSON name.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into the given struct.
//
// Bodies that are not JSON yield an error wrapping ErrMalformedJSON, bodies
// over the size limit one wrapping ErrBodyTooLarge. A value of the wrong
// JSON type yields *domain.ValidationErrors naming the field.
func DecodeJSON(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.NewFieldError(typeErr.Field, typeMessage(typeErr.Field, typeErr.Type))
		}
		var sizeErr *http.MaxBytesError
		if errors.As(err, &sizeErr) {
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, sizeErr.Limit)
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrMalformedJSON)
		}
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return nil
}

func typeMessage(field string, t reflect.Type) string {
	name := displayName(field)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return fmt.Sprintf("The %s field is invalid.", name)
	}
	switch t.Kind() {
	case reflect.String:
		return fmt.Sprintf("The %s field must be a string.", name)
	case reflect.Bool:
		return fmt.Sprintf("The %s field must be true or false.", name)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("The %s field must be an integer.", name)
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}

// ValidateRequest validates the given struct.
// Types with their own Validate method are trusted to use it; everything
// else is checked against its validate struct tags. Violations are returned
// as *domain.ValidationErrors.
func ValidateRequest(v any) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := domain.NewValidationErrors()
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), violationMessage(fe))
	}
	return verr
}

func violationMessage(fe validator.FieldError) string {
	name := displayName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", name, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}

// displayName turns a JSON field name into the words used in messages.
func displayName(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// Optional is a JSON field that remembers whether it was present in the
// body and whether it was null. It supports partial updates where an absent
// field is left alone and an explicit null clears the value.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys
// present in the body.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns the value, or nil when the field was absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
