package app

import (
	stderrors "errors"

	"github.com/zhubert/hopper/internal/errors"
)

// Report returns the single message shown to the user for err.
// It returns "" for a nil error.
func Report(err error) string {
	if err == nil {
		return ""
	}

	switch errors.GetKind(err) {
	case errors.KindConfig:
		return "configuration error: " + detail(err)
	case errors.KindEnvironment, errors.KindDiscovery, errors.KindNotFound, errors.KindInvalid:
		return detail(err)
	case errors.KindSessionOp:
		if errors.Has(err, errors.KindTimeout) {
			return "tmux did not respond in time: " + detail(err)
		}
		return "tmux command failed: " + detail(err)
	default:
		return "error: " + err.Error()
	}
}

// detail drops the outermost operation name, which only means something in logs.
func detail(err error) string {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return err.Error()
	}
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}
