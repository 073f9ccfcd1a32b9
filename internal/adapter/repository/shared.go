package repository

import (
	"errors"

	entdb "github.com/litteralabs/littera/internal/infrastructure/database/ent"
	"github.com/litteralabs/littera/internal/entity"
)

// translateEntError maps ent's generated error hierarchy onto the single
// entity.Error taxonomy every layer above Data Access switches on (§7).
// Grounded on the teacher's translateWordError (pgconn.PgError code switch)
// generalized to ent's own typed errors, since the generated client wraps
// the same underlying pgconn codes behind *ent.NotFoundError /
// *ent.ConstraintError rather than exposing them directly.
func translateEntError(notFoundMsg string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case entdb.IsNotFound(err):
		return entity.NotFound("%s", notFoundMsg)
	case entdb.IsConstraintError(err):
		return entity.Conflict("id", "%s", err.Error())
	default:
		var entErr *entity.Error
		if errors.As(err, &entErr) {
			return entErr
		}
		return entity.Internal(err, "data access failure")
	}
}
