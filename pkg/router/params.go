package router

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// ParamParser binds extracted route parameters onto typed struct fields.
type ParamParser struct{}

// NewParamParser creates a new parameter parser.
func NewParamParser() *ParamParser {
	return &ParamParser{}
}

// Parse populates a struct with values from the matched parameters.
// The target must be a pointer to a struct with `param` tags:
//
//	type ShowParams struct {
//	    ID   int      `param:"id"`
//	    Rest []string `param:"rest"`
//	}
//
// A []string field receives a catch-all value split on "/".
func (p *ParamParser) Parse(params Params, target any) error {
	if target == nil {
		return nil
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer, got %s", v.Kind())
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct, got pointer to %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		paramName := field.Tag.Get("param")
		if paramName == "" {
			continue
		}

		value, ok := params.Get(paramName)
		if !ok {
			continue
		}

		fieldValue := v.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		if err := p.setField(fieldValue, value); err != nil {
			return fmt.Errorf("parsing param %q: %w", paramName, err)
		}
	}

	return nil
}

// uuidRegex matches the canonical 8-4-4-4-12 hex form.
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidateUUID checks if a string is a valid UUID.
func ValidateUUID(value string) error {
	if !uuidRegex.MatchString(value) {
		return fmt.Errorf("invalid UUID: %s", value)
	}
	return nil
}

// ValidateInt checks if a string is a valid integer.
func ValidateInt(value string) error {
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		return fmt.Errorf("invalid integer: %s", value)
	}
	return nil
}

// ValidateParam checks a raw parameter value against a named type.
// Unknown type names are accepted so callers can carry their own types.
func ValidateParam(value, paramType string) error {
	switch paramType {
	case "int", "int8", "int16", "int32", "int64":
		return ValidateInt(value)
	case "uint", "uint8", "uint16", "uint32", "uint64":
		if _, err := strconv.ParseUint(value, 10, 64); err != nil {
			return fmt.Errorf("invalid unsigned integer: %s", value)
		}
		return nil
	case "uuid":
		return ValidateUUID(value)
	case "string", "":
		return nil
	default:
		return nil
	}
}

// setField sets a field value from a string.
func (p *ParamParser) setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %s", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer: %s", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float: %s", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", value)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			// Catch-all values arrive as one string: "a/b/c" → ["a", "b", "c"]
			var parts []string
			if value != "" {
				parts = strings.Split(value, "/")
			}
			field.Set(reflect.ValueOf(parts))
		} else {
			return fmt.Errorf("unsupported slice element type: %s", field.Type().Elem().Kind())
		}

	default:
		return fmt.Errorf("unsupported type: %s", field.Kind())
	}

	return nil
}
