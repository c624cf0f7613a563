package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"sirwa/internal/models"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected input field. The shape mirrors the
// detail entries returned by FastAPI so existing clients keep working.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Error is returned when a submission or query fails validation. It lists
// every violated field.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(f.Loc, "."), f.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// QueryError builds a validation error for a query string parameter.
func QueryError(param, msg, typ string) *Error {
	return &Error{Fields: []FieldError{{Loc: []string{"query", param}, Msg: msg, Type: typ}}}
}

// Validator checks decoded records against their struct tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &Validator{validate: v}
}

// Struct validates a decoded record. It returns nil or an *Error.
func (v *Validator) Struct(record any) error {
	err := v.validate.Struct(record)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fromFieldError(fe))
	}
	return &Error{Fields: fields}
}

// Parse decodes a JSON body into T, applies defaults and validates it.
// Unknown fields are ignored. Type mismatches and tag violations are merged
// so the caller sees one entry per offending field.
func Parse[T models.Record](v *Validator, body []byte) (T, error) {
	var record T
	fields, err := decodeFields(&record, body)
	if err != nil {
		return record, err
	}

	if d, ok := any(&record).(models.Defaulter); ok {
		d.ApplyDefaults()
	}

	if err := v.Struct(record); err != nil {
		var verr *Error
		if !errors.As(err, &verr) {
			return record, err
		}
		reported := make(map[string]bool, len(fields))
		for _, f := range fields {
			reported[strings.Join(f.Loc, ".")] = true
		}
		for _, f := range verr.Fields {
			if !reported[strings.Join(f.Loc, ".")] {
				fields = append(fields, f)
			}
		}
	}

	if len(fields) > 0 {
		return record, &Error{Fields: fields}
	}
	return record, nil
}

// decodeFields decodes each top-level member of body into the struct field
// of dst with the same JSON name. Every member of the wrong type is reported
// and its field is left at the zero value.
func decodeFields(dst any, body []byte) ([]FieldError, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &Error{Fields: []FieldError{{
				Loc:  []string{"body"},
				Msg:  "value is not a valid dict",
				Type: "type_error.dict",
			}}}
		}
		return nil, &Error{Fields: []FieldError{{
			Loc:  []string{"body"},
			Msg:  "request body is not valid JSON",
			Type: "value_error.jsondecode",
		}}}
	}

	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	var fields []FieldError
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name := jsonName(sf)
		if name == "" || !sf.IsExported() {
			continue
		}
		raw, ok := members[name]
		if !ok {
			continue
		}
		fv := rv.Field(i)
		if err := json.Unmarshal(raw, fv.Addr().Interface()); err != nil {
			fv.Set(reflect.Zero(sf.Type))
			expected := typeName(sf.Type)
			fields = append(fields, FieldError{
				Loc:  []string{"body", name},
				Msg:  "value is not a valid " + expected,
				Type: "type_error." + expected,
			})
		}
	}
	return fields, nil
}

// jsonName is the name a struct field is encoded under, or "" if it is skipped.
func jsonName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return sf.Name
	}
	return name
}

func fromFieldError(fe validator.FieldError) FieldError {
	loc := []string{"body", fe.Field()}
	switch fe.Tag() {
	case "required":
		return FieldError{Loc: loc, Msg: "field required", Type: "value_error.missing"}
	case "email":
		return FieldError{Loc: loc, Msg: "value is not a valid email address", Type: "value_error.email"}
	case "gte", "min":
		return FieldError{Loc: loc, Msg: "ensure this value is greater than or equal to " + fe.Param(), Type: "value_error.number.not_ge"}
	case "lte", "max":
		return FieldError{Loc: loc, Msg: "ensure this value is less than or equal to " + fe.Param(), Type: "value_error.number.not_le"}
	default:
		return FieldError{Loc: loc, Msg: fmt.Sprintf("failed on the '%s' rule", fe.Tag()), Type: "value_error." + fe.Tag()}
	}
}

func typeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "str"
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Struct, reflect.Map:
		return "dict"
	default:
		return t.Kind().String()
	}
}
