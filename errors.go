package wrapcall

import (
	"fmt"

	"github.com/code19m/errx"
)

const (
	CodeInvalidHooks = "WRAPCALL_INVALID_HOOKS"
	CodeNilTarget    = "WRAPCALL_NIL_TARGET"
)

// ErrNilTarget is returned by a wrapped function whose underlying function is nil.
//
//nolint:gochecknoglobals // sentinel error
var ErrNilTarget = errx.New("[wrapcall]: wrapped function is nil", errx.WithCode(CodeNilTarget))

func invalidHooksError(slot string, src any) error {
	return errx.New(
		fmt.Sprintf("[wrapcall]: unsupported %s hook source", slot),
		errx.WithCode(CodeInvalidHooks),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(errx.D{"slot": slot, "source_type": fmt.Sprintf("%T", src)}),
	)
}
