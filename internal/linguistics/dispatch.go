package linguistics

import "github.com/litteralabs/littera/internal/entity"

// registry maps a language tag to its Provider, populated by each
// language file's init(), mirroring dispatch.py's module-level _REGISTRY
// populated by each language module's call to register() at import time.
var registry = map[string]Provider{}

// register binds a Provider to a language tag. Called from each language
// file's init().
func register(language string, p Provider) {
	registry[language] = p
}

func lookup(language entity.Language) (Provider, bool) {
	p, ok := registry[language.Code()]
	return p, ok
}
