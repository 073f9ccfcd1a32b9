// Package linguistics implements the narrow, deterministic surface-form
// contract named in §4.7: given an Entity's canonical label and a
// Mention's grammatical features, produce the text a front-end should
// render in place of the mention pill. Implementations are per-language,
// deterministic rule tables — no probabilistic model, per the original
// Python package this is grounded on
// (original_source/src/littera/linguistics/{dispatch,en,pl}.py).
package linguistics

import "github.com/litteralabs/littera/internal/entity"

// Result is the surface_form contract's return shape: the rendered text,
// a short human-readable explanation of which rule fired (for the Review
// mechanism and debugging), and any warnings (e.g. an unsupported feature
// combination that fell back to the base form).
type Result struct {
	Text        string
	Explanation string
	Warnings    []string
}

// Features carries the grammatical intent of one Mention: part of speech
// plus the inflectional features relevant to it (number/case for nouns,
// tense/person for verbs, degree for adjectives). Unset string fields take
// each Provider's documented default.
type Features struct {
	Pos     string // "noun" (default) | "verb" | "adj"
	Number  string // nouns: "sg" (default) | "pl"
	Case    string // nouns (en): "plain" (default) | "poss"; nouns (pl): "nom" (default) | "gen" | "dat" | "acc" | "inst" | "loc" | "voc"
	Article string // nouns (en): "" (default) | "a" | "the"
	Tense   string // verbs: "present" (default) | "past" | "past_participle" | "present_participle"
	Person  string // verbs: "1sg" | "2sg" | "3sg" (default) | "1pl" | "2pl" | "3pl"
	Degree  string // adjectives: "comparative" | "superlative"
}

// Provider is the per-language surface-form implementation. Properties
// are the owning SemanticEntity's Properties bag (e.g. "countable",
// "gender", "declension_override").
type Provider interface {
	SurfaceForm(baseForm string, features Features, properties entity.Document) Result
}

// SurfaceForm dispatches to the Provider registered for language, falling
// back to returning base_form verbatim (with a warning) when no Provider
// is registered — mirroring dispatch.py's "func is None: return base_form".
func SurfaceForm(language entity.Language, baseForm string, features Features, properties entity.Document) Result {
	p, ok := lookup(language)
	if !ok {
		return Result{Text: baseForm, Explanation: "no linguistics provider registered for language", Warnings: []string{"unregistered language: " + language.Code()}}
	}
	return p.SurfaceForm(baseForm, features, properties)
}
