package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	cases := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"en", "en", false},
		{"EN", "en", false},
		{"pl-PL", "pl-pl", false},
		{" zh-Hans ", "zh-hans", false},
		{"", "", true},
		{"!!!", "", true},
	}
	for _, c := range cases {
		got, err := ParseLanguage(c.in)
		if c.wantErr {
			require.Error(t, err)
			assert.Equal(t, KindInvalidInput, KindOf(err))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestParseID(t *testing.T) {
	_, err := ParseID("not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))

	id := NewID()
	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestDocumentMarshalJSON_SortedKeys(t *testing.T) {
	d := Document{"zebra": 1, "alpha": 2, "mid": 3}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"mid":3,"zebra":1}`, string(b))
}

func TestDocumentMarshalJSON_Nil(t *testing.T) {
	var d Document
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}

func TestDocumentClone_Independent(t *testing.T) {
	d := Document{"a": 1}
	clone := d.Clone()
	clone["a"] = 2
	assert.Equal(t, 1, d["a"])
	assert.Equal(t, 2, clone["a"])
}

func TestDocumentGet(t *testing.T) {
	var nilDoc Document
	_, ok := nilDoc.Get("x")
	assert.False(t, ok)

	d := Document{"x": "y"}
	v, ok := d.Get("x")
	require.True(t, ok)
	assert.Equal(t, "y", v)
}
