package command

import "github.com/litteralabs/littera/internal/entity"

// ExitCode maps the typed error taxonomy (§7) onto a process exit status,
// so scripted callers can branch on failure kind without parsing stderr.
// internal/adapter/connectrpc/errors.go performs the equivalent mapping to
// connect.Code from the same entity.Kind values.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch entity.KindOf(err) {
	case entity.KindNotFound:
		return 2
	case entity.KindConflict:
		return 3
	case entity.KindInvariantViolation:
		return 4
	case entity.KindInvalidInput:
		return 5
	case entity.KindBackendUnavailable:
		return 6
	default:
		return 1
	}
}
