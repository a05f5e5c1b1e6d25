// Package i18n resolves the translation keys carried by assembled settings
// forms. Assembly only produces keys; hosts that render forms on the server
// can run Localize with a Translator (for example a Catalog loaded from YAML)
// to swap them for display text.
package i18n
