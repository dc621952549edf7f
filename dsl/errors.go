package dsl

import (
	"fmt"

	valc "github.com/karitora/valc"
)

// SchemaError reports a malformed schema: a programmer bug detected at
// compile time, never a data-level failure. It shares the diagnostic
// formatting of validation issues.
type SchemaError struct {
	Path    valc.Path
	Message string
}

func (e *SchemaError) Error() string {
	return valc.FormatMessage(e.Path, e.Message, nil)
}

func schemaErrf(at valc.Path, format string, args ...any) *SchemaError {
	return &SchemaError{Path: at, Message: fmt.Sprintf(format, args...)}
}
