package validator

import (
	"fmt"
	"strings"
)

// FieldErrors lists the fields that failed validation, in struct order.
type FieldErrors struct {
	Fields []string
	tags   []string
}

func (f *FieldErrors) add(field, tag string) {
	for _, existing := range f.Fields {
		if existing == field {
			return
		}
	}
	f.Fields = append(f.Fields, field)
	f.tags = append(f.tags, tag)
}

func (f *FieldErrors) Error() string {
	parts := make([]string, 0, len(f.Fields))
	for i, field := range f.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", field, f.tags[i]))
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}
