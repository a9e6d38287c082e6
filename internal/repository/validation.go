package repository

import "strings"

const maxTitleLength = 60

// ValidationError carries per-field schema messages. Error joins them into a
// single string, which is what the API surfaces to the caller.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, ", ")
}

// validateProductSchema is the second validation pass: the service layer has
// already checked field presence, this enforces the document schema before
// the insert.
func validateProductSchema(title, description string, price float64, stock int) error {
	var fields []string

	if strings.TrimSpace(title) == "" {
		fields = append(fields, "Please provide a product title.")
	} else if len(title) > maxTitleLength {
		fields = append(fields, "Title cannot be more than 60 characters")
	}
	if strings.TrimSpace(description) == "" {
		fields = append(fields, "Please provide a description.")
	}
	if price < 0 {
		fields = append(fields, "Price cannot be negative")
	}
	if stock < 0 {
		fields = append(fields, "Stock cannot be negative")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
