package linguistics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/litteralabs/littera/internal/entity"
)

func TestSurfaceForm_English_NounPluralization(t *testing.T) {
	cases := []struct {
		name string
		base string
		f    Features
		want string
	}{
		{"singular default", "cat", Features{}, "cat"},
		{"plural regular", "cat", Features{Number: "pl"}, "cats"},
		{"plural -y ending", "city", Features{Number: "pl"}, "cities"},
		{"plural possessive", "cat", Features{Number: "pl", Case: "poss"}, "cats'"},
		{"singular possessive", "cat", Features{Case: "poss"}, "cat's"},
		{"with indefinite article consonant", "cat", Features{Article: "a"}, "a cat"},
		{"with indefinite article vowel", "apple", Features{Article: "a"}, "an apple"},
		{"with definite article", "cat", Features{Article: "the"}, "the cat"},
		{"multi-word proper noun not pluralized", "New York", Features{Number: "pl"}, "New York"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SurfaceForm(entity.Language("en"), tc.base, tc.f, entity.Document{})
			assert.Equal(t, tc.want, got.Text)
		})
	}
}

func TestSurfaceForm_English_UncountableRespectsProperty(t *testing.T) {
	props := entity.Document{"countable": "no"}
	got := SurfaceForm(entity.Language("en"), "water", Features{Number: "pl"}, props)
	assert.Equal(t, "water", got.Text)
}

func TestSurfaceForm_English_DeclensionOverride(t *testing.T) {
	props := entity.Document{"declension_override": map[string]any{"pl": "geese"}}
	got := SurfaceForm(entity.Language("en"), "goose", Features{Number: "pl"}, props)
	assert.Equal(t, "geese", got.Text)
	assert.Equal(t, "declension_override", got.Explanation)
}

func TestSurfaceForm_English_VerbConjugation(t *testing.T) {
	cases := []struct {
		name   string
		base   string
		tense  string
		person string
		want   string
	}{
		{"present 3sg regular", "walk", "present", "3sg", "walks"},
		{"present non-3sg is base form", "walk", "present", "1sg", "walk"},
		{"past regular", "walk", "past", "", "walked"},
		{"past irregular", "go", "past", "", "went"},
		{"present participle regular", "run", "present_participle", "", "running"},
		{"3sg irregular", "be", "present", "3sg", "is"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Features{Pos: "verb", Tense: tc.tense, Person: tc.person}
			got := SurfaceForm(entity.Language("en"), tc.base, f, entity.Document{})
			assert.Equal(t, tc.want, got.Text)
		})
	}
}

func TestSurfaceForm_English_AdjectiveComparison(t *testing.T) {
	cases := []struct {
		name   string
		base   string
		degree string
		want   string
	}{
		{"no degree returns base form", "good", "", "good"},
		{"irregular comparative", "good", "comparative", "better"},
		{"irregular superlative", "bad", "superlative", "worst"},
		{"regular short comparative", "fast", "comparative", "faster"},
		{"regular long comparative uses more", "beautiful", "comparative", "more beautiful"},
		{"regular -y comparative", "happy", "comparative", "happier"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Features{Pos: "adj", Degree: tc.degree}
			got := SurfaceForm(entity.Language("en"), tc.base, f, entity.Document{})
			assert.Equal(t, tc.want, got.Text)
		})
	}
}

func TestSurfaceForm_UnregisteredLanguageFallsBackToBaseForm(t *testing.T) {
	got := SurfaceForm(entity.Language("xx"), "base", Features{}, entity.Document{})
	assert.Equal(t, "base", got.Text)
	assert.NotEmpty(t, got.Warnings)
}
