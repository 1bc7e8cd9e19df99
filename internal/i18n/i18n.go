package i18n

import (
	"embed"
	"fmt"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// DefaultLanguage is used when the configured language is empty.
const DefaultLanguage = "fr"

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations loads the embedded locales and selects lang.
func NewTranslations(lang string) (*Translations, error) {
	bundle := i18n.NewBundle(language.French)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}
	for _, entry := range entries {
		file := path.Join("locales", entry.Name())
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	t := &Translations{bundle: bundle}
	if lang == "" {
		lang = DefaultLanguage
	}
	if err := t.SetLanguage(lang); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		base, _ := tag.Base()
		if tag.String() == lang || base.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

// Languages lists the embedded locales.
func (t *Translations) Languages() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	cfg := &i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: templateData,
	}
	if count > 0 {
		cfg.PluralCount = count
	}
	localized, err := t.localize.Localize(cfg)
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}
