package connectrpc

import (
	"connectrpc.com/connect"

	"github.com/litteralabs/littera/internal/entity"
)

// toConnectError maps entity.Kind onto a connect.Code the same way
// internal/command/exitcode.go maps it onto a process exit code, so the
// Command Surface and the Resource Model adapter never invent a second
// error taxonomy.
func toConnectError(err error) error {
	if err == nil {
		return nil
	}
	code := connect.CodeInternal
	switch entity.KindOf(err) {
	case entity.KindNotFound:
		code = connect.CodeNotFound
	case entity.KindConflict:
		code = connect.CodeAlreadyExists
	case entity.KindInvariantViolation:
		code = connect.CodeFailedPrecondition
	case entity.KindInvalidInput:
		code = connect.CodeInvalidArgument
	case entity.KindBackendUnavailable:
		code = connect.CodeUnavailable
	}
	return connect.NewError(code, err)
}
