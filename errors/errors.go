// Package errors holds the sentinel errors shared across searchchat and
// re-exports the github.com/pkg/errors helpers used to wrap them.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidConfig     = fmt.Errorf("searchchat: invalid config")
	ErrInvalidRequest    = fmt.Errorf("searchchat: invalid request")
	ErrMissingCredential = fmt.Errorf("searchchat: missing credential")
	ErrEmptyPrompt       = fmt.Errorf("searchchat: empty prompt")
	ErrEmptyAnswer       = fmt.Errorf("searchchat: agent returned an empty answer")
)

var (
	New       = errors.New
	Errorf    = errors.Errorf
	Wrap      = errors.Wrap
	Wrapf     = errors.Wrapf
	WithStack = errors.WithStack
	Is        = errors.Is
	As        = errors.As
)
