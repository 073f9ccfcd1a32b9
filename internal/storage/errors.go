package storage

import "github.com/litteralabs/littera/internal/entity"

// remediation strings surfaced on entity.ErrBackendUnavailable when the
// embedded cluster's data directory looks corrupted. Both are exposed only
// as explicit Command Surface operations (`maintenance reset-wal`,
// `maintenance reinit`), never triggered automatically.
const (
	RemediationResetWAL    = "reset-wal"
	RemediationReinitialize = "reinit"
)

// errUnavailable builds a BackendUnavailable error carrying both named
// remediations, wrapping cause for diagnostics without losing its Kind.
func errUnavailable(cause error, format string, args ...any) *entity.Error {
	err := entity.BackendUnavailableErr([]string{RemediationResetWAL, RemediationReinitialize}, format, args...)
	if cause == nil {
		return err
	}
	wrapped := entity.Internal(cause, "%s", err.Message)
	wrapped.Kind = err.Kind
	wrapped.Remediation = err.Remediation
	return wrapped
}
