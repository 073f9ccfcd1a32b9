package linguistics

import (
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/litteralabs/littera/internal/entity"
)

func init() {
	register("en", englishProvider{})
}

// englishProvider is grounded on original_source/src/littera/linguistics/en.py:
// noun pluralization/possessive/article, verb conjugation, and adjective
// comparison, all table- or rule-driven. Pluralization is delegated to
// go-openapi/inflect (already in the module graph via entgo.io/ent's own
// table-name pluralization), in place of the Python original's `inflect`
// package — see DESIGN.md.
type englishProvider struct{}

var englishRuleset = inflect.NewDefaultRuleset()

// irregularVerb holds the four principal parts a regular -ed/-s/-ing rule
// can't derive: past, past participle, present participle, 3rd-singular.
type irregularVerb struct {
	past, pastParticiple, presentParticiple, thirdSingular string
}

var irregularVerbs = map[string]irregularVerb{
	"be": {"was", "been", "being", "is"}, "have": {"had", "had", "having", "has"},
	"do": {"did", "done", "doing", "does"}, "go": {"went", "gone", "going", "goes"},
	"say": {"said", "said", "saying", "says"}, "get": {"got", "gotten", "getting", "gets"},
	"make": {"made", "made", "making", "makes"}, "know": {"knew", "known", "knowing", "knows"},
	"think": {"thought", "thought", "thinking", "thinks"}, "take": {"took", "taken", "taking", "takes"},
	"see": {"saw", "seen", "seeing", "sees"}, "come": {"came", "come", "coming", "comes"},
	"give": {"gave", "given", "giving", "gives"}, "find": {"found", "found", "finding", "finds"},
	"tell": {"told", "told", "telling", "tells"}, "write": {"wrote", "written", "writing", "writes"},
	"run": {"ran", "run", "running", "runs"}, "begin": {"began", "begun", "beginning", "begins"},
	"break": {"broke", "broken", "breaking", "breaks"}, "bring": {"brought", "brought", "bringing", "brings"},
	"buy": {"bought", "bought", "buying", "buys"}, "build": {"built", "built", "building", "builds"},
	"choose": {"chose", "chosen", "choosing", "chooses"}, "cut": {"cut", "cut", "cutting", "cuts"},
	"draw": {"drew", "drawn", "drawing", "draws"}, "drink": {"drank", "drunk", "drinking", "drinks"},
	"drive": {"drove", "driven", "driving", "drives"}, "eat": {"ate", "eaten", "eating", "eats"},
	"fall": {"fell", "fallen", "falling", "falls"}, "feel": {"felt", "felt", "feeling", "feels"},
	"fly": {"flew", "flown", "flying", "flies"}, "forget": {"forgot", "forgotten", "forgetting", "forgets"},
	"grow": {"grew", "grown", "growing", "grows"}, "hear": {"heard", "heard", "hearing", "hears"},
	"hide": {"hid", "hidden", "hiding", "hides"}, "hold": {"held", "held", "holding", "holds"},
	"keep": {"kept", "kept", "keeping", "keeps"}, "lead": {"led", "led", "leading", "leads"},
	"leave": {"left", "left", "leaving", "leaves"}, "let": {"let", "let", "letting", "lets"},
	"lie": {"lay", "lain", "lying", "lies"}, "lose": {"lost", "lost", "losing", "loses"},
	"mean": {"meant", "meant", "meaning", "means"}, "meet": {"met", "met", "meeting", "meets"},
	"pay": {"paid", "paid", "paying", "pays"}, "put": {"put", "put", "putting", "puts"},
	"read": {"read", "read", "reading", "reads"}, "ride": {"rode", "ridden", "riding", "rides"},
	"ring": {"rang", "rung", "ringing", "rings"}, "rise": {"rose", "risen", "rising", "rises"},
	"sell": {"sold", "sold", "selling", "sells"}, "send": {"sent", "sent", "sending", "sends"},
	"set": {"set", "set", "setting", "sets"}, "show": {"showed", "shown", "showing", "shows"},
	"shut": {"shut", "shut", "shutting", "shuts"}, "sing": {"sang", "sung", "singing", "sings"},
	"sit": {"sat", "sat", "sitting", "sits"}, "sleep": {"slept", "slept", "sleeping", "sleeps"},
	"speak": {"spoke", "spoken", "speaking", "speaks"}, "spend": {"spent", "spent", "spending", "spends"},
	"stand": {"stood", "stood", "standing", "stands"}, "swim": {"swam", "swum", "swimming", "swims"},
	"teach": {"taught", "taught", "teaching", "teaches"}, "throw": {"threw", "thrown", "throwing", "throws"},
	"understand": {"understood", "understood", "understanding", "understands"},
	"wake":       {"woke", "woken", "waking", "wakes"}, "wear": {"wore", "worn", "wearing", "wears"},
	"win": {"won", "won", "winning", "wins"},
}

type irregularComparison struct{ comparative, superlative string }

var irregularComparisons = map[string]irregularComparison{
	"good": {"better", "best"}, "bad": {"worse", "worst"}, "far": {"farther", "farthest"},
	"little": {"less", "least"}, "much": {"more", "most"}, "many": {"more", "most"},
	"well": {"better", "best"}, "badly": {"worse", "worst"}, "old": {"older", "oldest"},
	"late": {"later", "latest"},
}

func isVowel(b byte) bool { return strings.IndexByte("aeiou", b) >= 0 }

func regularPast(verb string) string {
	if strings.HasSuffix(verb, "e") {
		return verb + "d"
	}
	if strings.HasSuffix(verb, "y") && len(verb) > 1 && !isVowel(verb[len(verb)-2]) {
		return verb[:len(verb)-1] + "ied"
	}
	if cvcDoubling(verb) {
		return verb + string(verb[len(verb)-1]) + "ed"
	}
	return verb + "ed"
}

func regular3sg(verb string) string {
	switch {
	case strings.HasSuffix(verb, "s"), strings.HasSuffix(verb, "sh"), strings.HasSuffix(verb, "ch"),
		strings.HasSuffix(verb, "x"), strings.HasSuffix(verb, "z"):
		return verb + "es"
	case strings.HasSuffix(verb, "y") && len(verb) > 1 && !isVowel(verb[len(verb)-2]):
		return verb[:len(verb)-1] + "ies"
	case strings.HasSuffix(verb, "o"):
		return verb + "es"
	default:
		return verb + "s"
	}
}

func regularPresentParticiple(verb string) string {
	if strings.HasSuffix(verb, "ie") {
		return verb[:len(verb)-2] + "ying"
	}
	if strings.HasSuffix(verb, "e") && !strings.HasSuffix(verb, "ee") {
		return verb[:len(verb)-1] + "ing"
	}
	if cvcDoubling(verb) {
		return verb + string(verb[len(verb)-1]) + "ing"
	}
	return verb + "ing"
}

// cvcDoubling approximates the Python original's one-syllable CVC-final
// heuristic for consonant doubling (e.g. "stop" -> "stopp-").
func cvcDoubling(word string) bool {
	if len(word) < 2 {
		return false
	}
	last := word[len(word)-1]
	if strings.IndexByte("bdgklmnprt", last) < 0 {
		return false
	}
	if !isVowel(word[len(word)-2]) {
		return false
	}
	if len(word) >= 3 && isVowel(word[len(word)-3]) {
		return false
	}
	if last == 'w' || last == 'x' || last == 'y' {
		return false
	}
	return true
}

func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for i := 0; i < len(word); i++ {
		v := strings.IndexByte("aeiouy", word[i]) >= 0
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func regularComparative(adj string) string {
	if short := countSyllables(adj) <= 1 || (countSyllables(adj) == 2 && strings.HasSuffix(adj, "y")); short {
		switch {
		case strings.HasSuffix(adj, "e"):
			return adj + "r"
		case strings.HasSuffix(adj, "y") && len(adj) > 1 && !isVowel(adj[len(adj)-2]):
			return adj[:len(adj)-1] + "ier"
		case cvcDoublingAdj(adj):
			return adj + string(adj[len(adj)-1]) + "er"
		default:
			return adj + "er"
		}
	}
	return "more " + adj
}

func regularSuperlative(adj string) string {
	if short := countSyllables(adj) <= 1 || (countSyllables(adj) == 2 && strings.HasSuffix(adj, "y")); short {
		switch {
		case strings.HasSuffix(adj, "e"):
			return adj + "st"
		case strings.HasSuffix(adj, "y") && len(adj) > 1 && !isVowel(adj[len(adj)-2]):
			return adj[:len(adj)-1] + "iest"
		case cvcDoublingAdj(adj):
			return adj + string(adj[len(adj)-1]) + "est"
		default:
			return adj + "est"
		}
	}
	return "most " + adj
}

// cvcDoublingAdj mirrors the Python original's adjective doubling check,
// which uses a narrower consonant set than the verb version (no "l").
func cvcDoublingAdj(word string) bool {
	if len(word) < 2 {
		return false
	}
	last := word[len(word)-1]
	if strings.IndexByte("bdgkmnprt", last) < 0 {
		return false
	}
	if !isVowel(word[len(word)-2]) {
		return false
	}
	if len(word) >= 3 && isVowel(word[len(word)-3]) {
		return false
	}
	return true
}

// indefiniteArticle picks "a" or "an" by the leading-sound heuristic: a
// leading vowel letter takes "an", everything else takes "a". This is the
// same coarse heuristic the original's inflect.engine().a() call reduces
// to for ordinary nouns; it does not handle silent-h or unit-initialism
// exceptions (e.g. "an hour", "an MRI").
func indefiniteArticle(word string) string {
	if word == "" {
		return "a"
	}
	if isVowel(strings.ToLower(word)[0]) {
		return "an"
	}
	return "a"
}

func isProperNoun(text string) bool {
	words := strings.Fields(text)
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		if w == "" || !('A' <= w[0] && w[0] <= 'Z') {
			return false
		}
	}
	return true
}

func checkOverride(props entity.Document, key string) (string, bool) {
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

func (englishProvider) conjugateVerb(baseForm string, f Features) Result {
	tense := f.Tense
	if tense == "" {
		tense = "present"
	}
	person := f.Person
	if person == "" {
		person = "3sg"
	}

	overrideKey := tense
	if tense == "present" && person == "3sg" {
		overrideKey = "3sg"
	} else if tense == "present" {
		overrideKey = "present"
	}

	lower := strings.ToLower(baseForm)
	irr, hasIrregular := irregularVerbs[lower]

	switch tense {
	case "past":
		if hasIrregular {
			return Result{Text: irr.past, Explanation: "irregular past tense"}
		}
		return Result{Text: regularPast(lower), Explanation: "regular past tense rule"}
	case "past_participle":
		if hasIrregular {
			return Result{Text: irr.pastParticiple, Explanation: "irregular past participle"}
		}
		return Result{Text: regularPast(lower), Explanation: "regular past participle rule (== past)"}
	case "present_participle":
		if hasIrregular {
			return Result{Text: irr.presentParticiple, Explanation: "irregular present participle"}
		}
		return Result{Text: regularPresentParticiple(lower), Explanation: "regular present participle rule"}
	}

	if person == "3sg" {
		if hasIrregular {
			return Result{Text: irr.thirdSingular, Explanation: "irregular 3rd-singular present"}
		}
		return Result{Text: regular3sg(lower), Explanation: "regular 3rd-singular present rule"}
	}
	_ = overrideKey
	return Result{Text: baseForm, Explanation: "present tense, non-3sg uses base form"}
}

func (englishProvider) compareAdjective(baseForm string, f Features, props entity.Document) Result {
	if f.Degree == "" {
		return Result{Text: baseForm}
	}
	if override, ok := checkOverride(props, f.Degree); ok {
		return Result{Text: override, Explanation: "declension_override"}
	}
	lower := strings.ToLower(baseForm)
	irr, hasIrregular := irregularComparisons[lower]
	switch f.Degree {
	case "comparative":
		if hasIrregular {
			return Result{Text: irr.comparative, Explanation: "irregular comparative"}
		}
		return Result{Text: regularComparative(lower), Explanation: "regular comparative rule"}
	case "superlative":
		if hasIrregular {
			return Result{Text: irr.superlative, Explanation: "irregular superlative"}
		}
		return Result{Text: regularSuperlative(lower), Explanation: "regular superlative rule"}
	default:
		return Result{Text: baseForm, Warnings: []string{"unknown degree: " + f.Degree}}
	}
}

func (p englishProvider) SurfaceForm(baseForm string, f Features, props entity.Document) Result {
	switch f.Pos {
	case "verb":
		return p.conjugateVerb(baseForm, f)
	case "adj":
		return p.compareAdjective(baseForm, f, props)
	}

	text := baseForm
	number := f.Number
	if number == "" {
		number = "sg"
	}
	caseKey := f.Case
	if caseKey == "" {
		caseKey = "plain"
	}
	compoundKey := number
	if caseKey != "plain" {
		compoundKey = number + ":" + caseKey
	}

	overrideApplied := false
	if override, ok := checkOverride(props, compoundKey); ok {
		text = override
		overrideApplied = true
	} else if number == "pl" {
		if override, ok := checkOverride(props, "pl"); ok {
			text = override
			overrideApplied = true
		}
	}

	if !overrideApplied && number == "pl" && !isProperNoun(text) {
		countable, _ := props["countable"].(string)
		if countable != "no" {
			text = englishRuleset.Pluralize(text)
		}
	}

	if caseKey == "poss" && (!overrideApplied || !strings.Contains(compoundKey, ":")) {
		if strings.HasSuffix(text, "s") {
			text = text + "'"
		} else {
			text = text + "'s"
		}
	}

	switch f.Article {
	case "a":
		text = indefiniteArticle(text) + " " + text
	case "the":
		text = "the " + text
	}

	explanation := "noun pipeline"
	if overrideApplied {
		explanation = "declension_override"
	}
	return Result{Text: text, Explanation: explanation}
}
