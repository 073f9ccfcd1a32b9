package linguistics

import (
	"strings"

	"github.com/litteralabs/littera/internal/entity"
)

func init() {
	register("pl", polishProvider{})
}

// polishProvider is grounded on original_source/src/littera/linguistics/pl.py,
// adapted from a PoliMorf SQLite lookup (a bundled data file outside this
// module's scope, see DESIGN.md) to a deterministic ending-substitution
// rule table covering the common regular declension patterns by gender.
// declension_override on the entity's Properties always wins, exactly as
// in the original, so any noun the rule table gets wrong can be corrected
// per-entity without touching code.
type polishProvider struct{}

var validCases = map[string]bool{"nom": true, "gen": true, "dat": true, "acc": true, "inst": true, "loc": true, "voc": true}
var validNumbers = map[string]bool{"sg": true, "pl": true}
var validGenders = map[string]bool{"m1": true, "m2": true, "m3": true, "f": true, "n": true}

// endingRule maps a (gender, case, number) combination to a lemma-ending
// substitution: strip Strip characters from the lemma, append Suffix.
type endingRule struct {
	strip  int
	suffix string
}

// regularEndings covers the dominant regular pattern per gender. Nouns
// that deviate (most of them, in Polish) fall back to base_form, same as
// the original's "no PoliMorf row" fallback path.
var regularEndings = map[string]map[string]endingRule{
	// masculine (m1/m2/m3 share the productive singular pattern here)
	"m": {
		"sg:gen": {0, "u"}, "sg:dat": {0, "owi"}, "sg:acc": {0, "a"},
		"sg:inst": {0, "em"}, "sg:loc": {0, "e"}, "sg:voc": {0, "ie"},
		"pl:nom": {0, "y"}, "pl:gen": {0, "ów"}, "pl:dat": {0, "om"},
		"pl:acc": {0, "ów"}, "pl:inst": {0, "ami"}, "pl:loc": {0, "ach"}, "pl:voc": {0, "y"},
	},
	// feminine nouns ending in -a
	"f": {
		"sg:gen": {1, "y"}, "sg:dat": {1, "ie"}, "sg:acc": {1, "ę"},
		"sg:inst": {1, "ą"}, "sg:loc": {1, "ie"}, "sg:voc": {1, "o"},
		"pl:nom": {1, "y"}, "pl:gen": {1, ""}, "pl:dat": {1, "om"},
		"pl:acc": {1, "y"}, "pl:inst": {1, "ami"}, "pl:loc": {1, "ach"}, "pl:voc": {1, "y"},
	},
	// neuter nouns ending in -o
	"n": {
		"sg:gen": {1, "a"}, "sg:dat": {1, "u"}, "sg:acc": {0, ""},
		"sg:inst": {1, "em"}, "sg:loc": {1, "e"}, "sg:voc": {0, ""},
		"pl:nom": {1, "a"}, "pl:gen": {1, ""}, "pl:dat": {1, "om"},
		"pl:acc": {1, "a"}, "pl:inst": {1, "ami"}, "pl:loc": {1, "ach"}, "pl:voc": {1, "a"},
	},
}

func endingGenderGroup(gender string) string {
	switch gender {
	case "m1", "m2", "m3":
		return "m"
	case "f":
		return "f"
	case "n":
		return "n"
	default:
		return ""
	}
}

func checkPolishOverride(props entity.Document, key string) (string, bool) {
	raw, ok := props["declension_override"]
	if !ok {
		return "", false
	}
	overrides, ok := raw.(map[string]any)
	if !ok {
		return "", false
	}
	v, ok := overrides[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (polishProvider) SurfaceForm(baseForm string, f Features, props entity.Document) Result {
	number := f.Number
	if number == "" {
		number = "sg"
	}
	caseKey := f.Case
	if caseKey == "" {
		caseKey = "nom"
	}

	if !validCases[caseKey] || !validNumbers[number] {
		return Result{Text: baseForm, Warnings: []string{"invalid number/case combination"}}
	}
	if caseKey == "nom" && number == "sg" {
		return Result{Text: baseForm, Explanation: "nominative singular is the base form"}
	}

	compoundKey := number + ":" + caseKey
	if override, ok := checkPolishOverride(props, compoundKey); ok {
		return Result{Text: override, Explanation: "declension_override"}
	}
	if number == "sg" {
		if override, ok := checkPolishOverride(props, caseKey); ok {
			return Result{Text: override, Explanation: "declension_override"}
		}
	}

	gender, _ := props["gender"].(string)
	if gender != "" && !validGenders[gender] {
		gender = ""
	}
	if gender == "" {
		gender = inferGender(baseForm)
	}

	group := endingGenderGroup(gender)
	table, ok := regularEndings[group]
	if !ok {
		return Result{Text: baseForm, Explanation: "gender unknown, fell back to base form"}
	}
	rule, ok := table[compoundKey]
	if !ok {
		return Result{Text: baseForm, Explanation: "no rule for this case/number, fell back to base form"}
	}

	runes := []rune(baseForm)
	if rule.strip > len(runes) {
		return Result{Text: baseForm, Warnings: []string{"lemma too short for ending rule"}}
	}
	stem := string(runes[:len(runes)-rule.strip])
	return Result{Text: stem + rule.suffix, Explanation: "regular declension rule for gender " + gender}
}

// inferGender guesses gender from the lemma's final letter, the same
// coarse heuristic a speaker uses absent an explicit gender property:
// -a is typically feminine, -o/-e typically neuter, otherwise masculine.
func inferGender(lemma string) string {
	lower := strings.ToLower(lemma)
	switch {
	case strings.HasSuffix(lower, "a"):
		return "f"
	case strings.HasSuffix(lower, "o"), strings.HasSuffix(lower, "e"):
		return "n"
	default:
		return "m1"
	}
}
