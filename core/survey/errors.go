package survey

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-surveys/core"
)

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrEmptySubject = errors.New("subject is required")
	ErrRoleMismatch = errors.New("selection does not apply to this role")
)

// DecodeError is returned when a token is neither a subject/teacher pair nor a child id.
type DecodeError struct {
	Token  string
	Reason string
}

func newDecodeError(token, reason string) error {
	return &DecodeError{Token: token, Reason: reason}
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("decoding token %q: %s", err.Token, err.Reason)
}

func IsDecodeError(err error) bool {
	_, ok := errors.Cause(err).(*DecodeError)
	return ok
}

// MalformedInputWarning reports a question payload that did not have the expected shape.
// It is never fatal: callers carry on with whatever records were usable.
type MalformedInputWarning struct {
	Reason string
	Fields []core.FieldError
}

func (w *MalformedInputWarning) Error() string {
	if len(w.Fields) == 0 {
		return "malformed input: " + w.Reason
	}
	flds := make([]string, 0, len(w.Fields))
	for _, f := range w.Fields {
		flds = append(flds, f.Field+": "+f.Error)
	}
	return fmt.Sprintf("malformed input: %s (%s)", w.Reason, strings.Join(flds, "; "))
}

func IsMalformedInput(err error) bool {
	_, ok := errors.Cause(err).(*MalformedInputWarning)
	return ok
}
