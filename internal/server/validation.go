package server

import (
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
)

// FieldError is one entry in the errors array clients render next to a
// form field.
type FieldError struct {
	Param string `json:"param,omitempty"`
	Msg   string `json:"msg"`
}

// FormatValidationErrors flattens an ozzo validation result into the wire
// shape. Fields come out in name order so the payload is stable.
func FormatValidationErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validation.Errors)
	if !ok {
		return []FieldError{{Msg: err.Error()}}
	}

	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]FieldError, 0, len(fields))
	for _, field := range fields {
		out = append(out, FieldError{
			Param: field,
			Msg:   verrs[field].Error(),
		})
	}
	return out
}
