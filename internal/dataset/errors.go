package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema is matched by every *SchemaError
var ErrSchema = errors.New("dataset schema error")

// SchemaError reports required columns absent from the source
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Is lets errors.Is(err, ErrSchema) match
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
