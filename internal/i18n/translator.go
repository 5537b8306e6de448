package i18n

import (
	"embed"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Translator renders user-facing messages in the caller's language.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

func NewTranslator(defaultLocale string) (*Translator, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.fr.toml"} {
		if _, err = bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, fmt.Errorf("bundle.LoadMessageFileFS(%s) -> %w", file, err)
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
	}, nil
}

// T renders key for acceptLanguage, an Accept-Language header value or a plain tag.
// Unknown keys render as the key itself.
func (t *Translator) T(acceptLanguage, key string, data map[string]any) string {
	localizer := i18n.NewLocalizer(t.bundle, acceptLanguage, t.defaultLanguage.String())

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		zap.L().Warn("localize failed", zap.String("key", key), zap.Error(err))
		return key
	}

	return msg
}
