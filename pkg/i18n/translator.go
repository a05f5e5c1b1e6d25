package i18n

import (
	"errors"
	"strings"
)

var (
	// ErrMissingTranslator is passed to the missing handler when no translator
	// was configured.
	ErrMissingTranslator = errors.New("i18n: translator is not configured")
	// ErrMissingTranslation is returned by translators that hold no message
	// for the requested key.
	ErrMissingTranslation = errors.New("i18n: translation not found")
)

// Translator resolves a translation key within a domain for a locale.
type Translator interface {
	Translate(locale, domain, key string) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, domain, key string) (string, error)

// Translate calls the underlying function.
func (fn TranslatorFunc) Translate(locale, domain, key string) (string, error) {
	return fn(locale, domain, key)
}

// MissingTranslationHandler decides the text shown for an untranslated key.
type MissingTranslationHandler func(locale, domain, key string, err error) string

func missingTranslationDefault(_, _, key string, _ error) string {
	return key
}

func translate(locale, domain, key string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if t == nil {
		return onMissing(locale, domain, key, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, domain, key)
	if err != nil || strings.TrimSpace(msg) == "" {
		if err == nil {
			err = ErrMissingTranslation
		}
		return onMissing(locale, domain, key, err)
	}
	return msg
}
