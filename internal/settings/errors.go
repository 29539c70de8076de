package settings

import "fmt"

// DeserializationError reports a settings document that does not match the
// schema. Field is the JSON path of the offending value if known.
type DeserializationError struct {
	Field string
	Err   error
}

func (e *DeserializationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("deserializing settings: %v", e.Err)
	}
	return fmt.Sprintf("deserializing settings field %q: %v", e.Field, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
