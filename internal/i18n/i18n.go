// Package i18n provides the user-facing strings of the bot.
//
// Strings live in embedded per-locale TOML files and are addressed by
// dotted keys such as "search.no_results". Formatting goes through an
// x/text printer so numbers render according to the locale.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Localizer resolves message keys to formatted strings for one locale.
type Localizer struct {
	messages map[string]string
	printer  *message.Printer
}

// Load reads the embedded string table for the given locale, e.g. "en_US".
func Load(locale string) (*Localizer, error) {
	data, err := localeFS.ReadFile("locales/" + locale + ".toml")
	if err != nil {
		return nil, fmt.Errorf("unknown locale %q: %w", locale, err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		tag = language.English
	}

	l := &Localizer{
		messages: make(map[string]string),
		printer:  message.NewPrinter(tag),
	}
	flatten("", raw, l.messages)
	return l, nil
}

// flatten turns nested TOML tables into dotted keys.
func flatten(prefix string, raw map[string]any, out map[string]string) {
	for key, value := range raw {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]any:
			flatten(full, v, out)
		}
	}
}

// Get returns the raw string for key, or the key itself when it is missing
// so that a broken table stays visible instead of rendering empty messages.
func (l *Localizer) Get(key string) string {
	if msg, ok := l.messages[key]; ok {
		return msg
	}
	return key
}

// Sprintf formats the string under key with the localized printer.
func (l *Localizer) Sprintf(key string, args ...any) string {
	return l.printer.Sprintf(l.Get(key), args...)
}
