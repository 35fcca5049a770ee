package tmcore

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// GetI18n returns an initialized internationalization bundle with the
// embedded condition-message locales, keyed by condition. The Reporter does
// not use it (its messages are plain English strings); a caller that wants
// localized output picks a Localizer from the returned bundle (see
// ErrorRecord.Localize).
func GetI18n() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)

	err := bundle.LoadFS(localesFS, "locales/*.json")

	return bundle, err
}

// Localize renders r through localizer, keying the translation catalog by
// condition and substituting the record's own message as "{message}"; the
// CLI driver decides which locale to pass (the core stays locale-agnostic,
// §1 "out of scope: the command-line driver").
func (r ErrorRecord) Localize(localizer *i18n.Localizer) string {
	return localizer.Get(r.Condition.String(), i18n.Vars(map[string]any{"message": r.Message}))
}
