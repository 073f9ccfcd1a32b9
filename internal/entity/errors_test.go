package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_UntypedErrorDefaultsToInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestKindOf_Nil(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Internal(cause, "wrapped")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestConflict_CarriesOffending(t *testing.T) {
	err := Conflict("entity-123", "already exists")
	assert.Equal(t, KindConflict, err.Kind)
	assert.Equal(t, "entity-123", err.Offending)
	assert.Contains(t, err.Error(), "entity-123")
}
