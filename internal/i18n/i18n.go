// Package i18n translates interface strings. French is the reference
// language: keys missing from another locale fall back to it.
package i18n

import (
	"embed"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/JaimeStill/printmg/pkg/money"
)

// Fallback is the locale every lookup falls back to.
const Fallback = "fr"

//go:embed locales/*.toml
var locales embed.FS

// Locale codes map to BCP 47 tags; Malagasy is "mlg" in the interface and
// "mg" in BCP 47.
var (
	malagasy = language.MustParse("mg")

	tags = map[string]language.Tag{
		"fr":  language.French,
		"en":  language.English,
		"mlg": malagasy,
	}
)

var (
	supported = []string{"fr", "en", "mlg"}
	matcher   = language.NewMatcher([]language.Tag{language.French, language.English, malagasy})
	bundles   = mustLoad()
)

// Supported returns the locale codes with a bundle.
func Supported() []string {
	return slices.Clone(supported)
}

// Negotiate picks the best supported locale for pref, which may be a locale
// code or an Accept-Language style list such as "mg-MG,en;q=0.8".
func Negotiate(pref string) string {
	pref = strings.TrimSpace(pref)
	if _, ok := tags[pref]; ok {
		return pref
	}

	prefs, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(prefs) == 0 {
		return Fallback
	}

	_, index, conf := matcher.Match(prefs...)
	if conf == language.No {
		return Fallback
	}
	return supported[index]
}

// Translator looks up strings for one locale.
type Translator struct {
	locale   string
	tag      language.Tag
	messages map[string]string
	fallback map[string]string
}

// New returns a translator for the locale negotiated from pref.
func New(pref string) *Translator {
	locale := Negotiate(pref)
	return &Translator{
		locale:   locale,
		tag:      tags[locale],
		messages: bundles[locale],
		fallback: bundles[Fallback],
	}
}

// Locale returns the locale code in use.
func (t *Translator) Locale() string {
	return t.locale
}

// Tag returns the BCP 47 tag of the locale.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// T returns the string at the dotted key, formatted with args. Missing keys
// fall back to French, then to the key itself.
func (t *Translator) T(key string, args ...any) string {
	msg, ok := t.messages[key]
	if !ok {
		msg, ok = t.fallback[key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Has reports whether the locale itself defines key.
func (t *Translator) Has(key string) bool {
	_, ok := t.messages[key]
	return ok
}

// StatusLabel returns the label of an order status code, or the code when
// it is unknown.
func (t *Translator) StatusLabel(code string) string {
	key := "orders.status." + code
	if label := t.T(key); label != key {
		return label
	}
	return code
}

// Amount formats m with the locale's digit grouping.
func (t *Translator) Amount(m money.Money) string {
	return m.Format(t.tag)
}

// Keys returns every key of the fallback bundle, sorted.
func Keys() []string {
	return slices.Sorted(maps.Keys(bundles[Fallback]))
}

func mustLoad() map[string]map[string]string {
	out := make(map[string]map[string]string, len(supported))
	for _, locale := range supported {
		data, err := locales.ReadFile("locales/" + locale + ".toml")
		if err != nil {
			panic(fmt.Sprintf("i18n: read %s bundle: %v", locale, err))
		}

		var tree map[string]any
		if err := toml.Unmarshal(data, &tree); err != nil {
			panic(fmt.Sprintf("i18n: parse %s bundle: %v", locale, err))
		}

		flat := make(map[string]string)
		flatten("", tree, flat)
		out[locale] = flat
	}
	return out
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flatten(key, v, out)
		case string:
			out[key] = v
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}
