package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockNormalize_TrimsTrailingWhitespace(t *testing.T) {
	b := &Block{SourceText: "line one  \nline two\t\n\nline three"}
	b.Normalize()
	assert.Equal(t, "line one\nline two\n\nline three", b.SourceText)
}

func TestBlockNormalize_Idempotent(t *testing.T) {
	b := &Block{SourceText: "already clean\ntext"}
	b.Normalize()
	first := b.SourceText
	b.Normalize()
	assert.Equal(t, first, b.SourceText)
}
