package entity

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ID is the opaque 128-bit identifier shared by every entity in §3. Callers
// (front-end or Command Surface) mint it, never the Data Access layer, so
// optimistic writes round-trip to the same identifier.
type ID = uuid.UUID

// NewID mints a fresh identifier. Exposed so command handlers that need to
// mint a child identifier before the caller supplies one (e.g. `doc add`
// without an explicit --id) have one call site to generalize from.
func NewID() ID { return uuid.New() }

// ParseID validates a caller-supplied identifier string, returning
// InvalidInput on malformed input.
func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return ID{}, InvalidInput("id", "malformed identifier %q", s)
	}
	return id, nil
}

// Language is a validated BCP-47-ish language tag. Unlike the teacher's
// closed Language enum, Littera accepts any well-formed tag — the set of
// languages a multilingual work may touch is open-ended.
type Language string

const LanguageUnspecified Language = ""

var languageTagPattern = regexp.MustCompile(`^[a-zA-Z]{2,8}(-[a-zA-Z0-9]{1,8})*$`)

// Code returns the lowercase tag, unmodified otherwise.
func (l Language) Code() string {
	return strings.ToLower(strings.TrimSpace(string(l)))
}

func (l Language) Valid() bool {
	return languageTagPattern.MatchString(l.Code())
}

// ParseLanguage validates and normalizes an arbitrary language tag.
func ParseLanguage(raw string) (Language, error) {
	lang := Language(strings.TrimSpace(raw))
	if lang.Code() == "" {
		return LanguageUnspecified, InvalidInput("language", "language tag is required")
	}
	if !lang.Valid() {
		return LanguageUnspecified, InvalidInput("language", "malformed language tag %q", raw)
	}
	return Language(lang.Code()), nil
}

// Document is the open-ended tagged-document value used for metadata,
// properties, features, and alias bags (§9 "Dynamic attribute bags").
// It stores structured-document columns (jsonb) and round-trips through
// encoding/json deterministically: MarshalJSON always emits object keys in
// sorted order so two structurally-equal bags serialize byte-identically,
// which the canonical export/import round-trip (§8) depends on.
type Document map[string]any

// MarshalJSON emits keys in sorted order for a stable canonical encoding.
func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := json.Marshal(d[k])
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// Clone returns a shallow copy, used when normalizing a caller-supplied bag
// before persistence so mutation of the caller's map can't alias stored state.
func (d Document) Clone() Document {
	if d == nil {
		return Document{}
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Get returns a key's value and whether it was present, mirroring map
// access but documenting intent at call sites (entity property reads).
func (d Document) Get(key string) (any, bool) {
	if d == nil {
		return nil, false
	}
	v, ok := d[key]
	return v, ok
}
