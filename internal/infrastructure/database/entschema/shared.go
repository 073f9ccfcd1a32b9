package entschema

import (
	"github.com/google/uuid"
	"github.com/litteralabs/littera/internal/entity"
)

// uuidZero and documentZero are sample values ent's field builders use to
// infer the Go type of a column; they carry no runtime meaning.
var (
	uuidZero     = uuid.UUID{}
	documentZero = entity.Document{}
)
