package i18n

import "github.com/goliatone/go-settingsform/pkg/form"

// Options configure Localize.
type Options struct {
	Locale     string
	Translator Translator
	// OnMissing controls the text used when a key has no translation. The
	// default returns the key itself.
	OnMissing MissingTranslationHandler
}

// Localize returns copies of descriptors whose label and choice labels hold
// translated text instead of translation keys. The input is left untouched.
func Localize(descriptors []form.FieldDescriptor, opts Options) []form.FieldDescriptor {
	if descriptors == nil {
		return nil
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	out := make([]form.FieldDescriptor, len(descriptors))
	for i, d := range descriptors {
		domain := d.Options.TranslationDomain
		d.Options.Label = translate(opts.Locale, domain, d.Options.Label, opts.Translator, onMissing)
		if len(d.Options.Choices) > 0 {
			choices := make([]form.Choice, len(d.Options.Choices))
			for j, choice := range d.Options.Choices {
				choice.Label = translate(opts.Locale, domain, choice.Label, opts.Translator, onMissing)
				choices[j] = choice
			}
			d.Options.Choices = choices
		}
		out[i] = d
	}
	return out
}

// LocalizeForm localizes every field of f in place.
func LocalizeForm(f *form.Form, opts Options) {
	if f == nil {
		return
	}
	f.Fields = Localize(f.Fields, opts)
}
