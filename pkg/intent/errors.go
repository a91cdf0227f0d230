package intent

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingResourceName is returned when no ingress name precedes the flags.
	ErrMissingResourceName = errors.New("missing ingress name")
	// ErrMalformedFlag covers every flag whose value cannot be used.
	ErrMalformedFlag = errors.New("malformed flag")
	// ErrMissingValue is returned when a value flag is the last token.
	ErrMissingValue = errors.New("flag needs a value")
)

// FlagError reports the token that could not be parsed.
type FlagError struct {
	Token string
	Err   error
}

func (e *FlagError) Error() string {
	return fmt.Sprintf("%s: %v", e.Token, e.Err)
}

func (e *FlagError) Unwrap() error {
	return e.Err
}

// Is makes every FlagError match ErrMalformedFlag.
func (e *FlagError) Is(target error) bool {
	return target == ErrMalformedFlag
}
