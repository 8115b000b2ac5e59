package menu

import (
	"errors"
	"fmt"
)

// IngestErrorCode categorizes dataset load failures.
type IngestErrorCode string

const (
	ErrCodeReadFailed    IngestErrorCode = "READ_FAILED"
	ErrCodeMissingColumn IngestErrorCode = "MISSING_COLUMN"
	ErrCodeNotNumeric    IngestErrorCode = "NOT_NUMERIC"
	ErrCodeNegativeValue IngestErrorCode = "NEGATIVE_VALUE"
	ErrCodeEmptyField    IngestErrorCode = "EMPTY_FIELD"
	ErrCodeEmptyDataset  IngestErrorCode = "EMPTY_DATASET"
)

// IngestError reports a malformed dataset. It is fatal at startup.
type IngestError struct {
	Code IngestErrorCode

	// Row is the 1-based data row (header excluded), 0 when not row specific.
	Row int

	// Column is the offending column name, if any.
	Column string

	Message string

	Err error
}

func (e *IngestError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("%s: row %d, column %q: %s", e.Code, e.Row, e.Column, e.Message)
	case e.Column != "":
		return fmt.Sprintf("%s: column %q: %s", e.Code, e.Column, e.Message)
	case e.Row > 0:
		return fmt.Sprintf("%s: row %d: %s", e.Code, e.Row, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// UnknownAttributeError is returned when bounds are requested for a field
// that is not a numeric attribute. It indicates a wiring bug.
type UnknownAttributeError struct {
	Name string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown attribute %q", e.Name)
}

// IsIngestError reports whether err wraps an IngestError.
func IsIngestError(err error) bool {
	var ie *IngestError
	return errors.As(err, &ie)
}

// IsUnknownAttribute reports whether err wraps an UnknownAttributeError.
func IsUnknownAttribute(err error) bool {
	var ue *UnknownAttributeError
	return errors.As(err, &ue)
}
