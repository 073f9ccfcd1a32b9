package linguistics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/litteralabs/littera/internal/entity"
)

func TestSurfaceForm_Polish_NominativeSingularIsBaseForm(t *testing.T) {
	got := SurfaceForm(entity.Language("pl"), "kot", Features{}, entity.Document{})
	assert.Equal(t, "kot", got.Text)
	assert.Equal(t, "nominative singular is the base form", got.Explanation)
}

func TestSurfaceForm_Polish_RegularDeclension(t *testing.T) {
	cases := []struct {
		name     string
		base     string
		gender   string
		number   string
		caseKey  string
		want     string
	}{
		{"masculine genitive singular", "kot", "m1", "sg", "gen", "kotu"},
		{"masculine instrumental singular", "kot", "m1", "sg", "inst", "kotem"},
		{"masculine nominative plural", "kot", "m1", "pl", "nom", "koty"},
		{"feminine genitive singular", "mapa", "f", "sg", "gen", "mapy"},
		{"feminine accusative singular", "mapa", "f", "sg", "acc", "mapę"},
		{"neuter genitive singular", "okno", "n", "sg", "gen", "okna"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			props := entity.Document{"gender": tc.gender}
			f := Features{Number: tc.number, Case: tc.caseKey}
			got := SurfaceForm(entity.Language("pl"), tc.base, f, props)
			assert.Equal(t, tc.want, got.Text)
		})
	}
}

func TestSurfaceForm_Polish_InfersGenderWhenUnset(t *testing.T) {
	// "mapa" ends in -a, the feminine heuristic, with no explicit gender.
	got := SurfaceForm(entity.Language("pl"), "mapa", Features{Number: "sg", Case: "gen"}, entity.Document{})
	assert.Equal(t, "mapy", got.Text)
}

func TestSurfaceForm_Polish_DeclensionOverrideWins(t *testing.T) {
	props := entity.Document{
		"gender":              "m1",
		"declension_override": map[string]any{"sg:gen": "psa"},
	}
	got := SurfaceForm(entity.Language("pl"), "pies", Features{Number: "sg", Case: "gen"}, props)
	assert.Equal(t, "psa", got.Text)
	assert.Equal(t, "declension_override", got.Explanation)
}

func TestSurfaceForm_Polish_InvalidCaseFallsBackWithWarning(t *testing.T) {
	got := SurfaceForm(entity.Language("pl"), "kot", Features{Case: "bogus"}, entity.Document{})
	assert.Equal(t, "kot", got.Text)
	assert.NotEmpty(t, got.Warnings)
}

func TestSurfaceForm_Polish_LemmaTooShortForEndingRule(t *testing.T) {
	// An empty lemma can never satisfy any ending rule's strip count, so
	// this always exercises the too-short fallback regardless of which
	// rule the gender group picks.
	props := entity.Document{"gender": "f"}
	got := SurfaceForm(entity.Language("pl"), "", Features{Number: "pl", Case: "gen"}, props)
	assert.Equal(t, "", got.Text)
	assert.NotEmpty(t, got.Warnings)
}
