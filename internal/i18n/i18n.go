// Package i18n is the optional translation seam. The application works
// fully without a translator; displayed strings fall back to their
// keys.
package i18n

import "log"

// Translator localizes display strings. Implementations may be backed
// by anything; the UI only ever calls these two methods.
type Translator interface {
	CurrentLanguage() string
	Translate(key string) string
}

// Passthrough is the no-op translator: every key is its own
// translation.
type Passthrough struct{}

func (Passthrough) CurrentLanguage() string { return "es" }

func (Passthrough) Translate(key string) string { return key }

// T translates key with tr, falling back to the key itself when tr is
// nil or panics. Translation failures never break the UI.
func T(tr Translator, key string) (out string) {
	if tr == nil {
		return key
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("translator failed for %q: %v", key, r)
			out = key
		}
	}()
	if s := tr.Translate(key); s != "" {
		return s
	}
	return key
}

// Static is a map-backed translator for fixed UI chrome strings.
type Static struct {
	Language string
	Entries  map[string]string
}

func (s Static) CurrentLanguage() string {
	if s.Language == "" {
		return "es"
	}
	return s.Language
}

func (s Static) Translate(key string) string {
	return s.Entries[key]
}
