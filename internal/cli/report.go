package cli

import (
	"errors"
	"fmt"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"io"
)

// usageError is a configuration problem. Its message is printed as is, without a trace.
type usageError struct {
	message string
}

func (e *usageError) Error() string {
	return e.message
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// withStack records a stack trace on err unless it already carries one.
func withStack(err error) error {
	if err == nil {
		return nil
	}
	var st stackTracer
	if errors.As(err, &st) {
		return err
	}
	return pkgerrors.WithStack(err)
}

// report writes err to w: configuration errors as their message, anything else as an
// exception followed by the stack trace recorded where it was wrapped.
func report(w io.Writer, err error) {
	var usage *usageError
	if errors.As(err, &usage) {
		_, _ = fmt.Fprintln(w, usage.message)
		return
	}

	log.Debug().Stack().Err(err).Msg("query failed")
	_, _ = fmt.Fprintln(w, "Exception while running Codelab: "+err.Error())

	var st stackTracer
	if errors.As(err, &st) {
		_, _ = fmt.Fprintf(w, "%+v\n", st.StackTrace())
	}
}
