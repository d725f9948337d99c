package analysis

import (
	"errors"
	"fmt"
)

// ErrInputDecode matches any *InputDecodeError through errors.Is.
var ErrInputDecode = errors.New("input image could not be decoded")

// InputDecodeError is returned when the supplied bytes are not a decodable
// still image.
type InputDecodeError struct {
	Err error
}

func (e *InputDecodeError) Error() string {
	if e.Err == nil {
		return ErrInputDecode.Error()
	}
	return fmt.Sprintf("%s: %v", ErrInputDecode.Error(), e.Err)
}

func (e *InputDecodeError) Unwrap() error {
	return e.Err
}

func (e *InputDecodeError) Is(target error) bool {
	return target == ErrInputDecode
}
