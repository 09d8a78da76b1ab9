// Package locale holds the display-language preference and the text
// direction derived from it.
package locale

import (
	"strings"

	"github.com/artpar/marquee/internal/kv"
	"github.com/artpar/marquee/internal/persist"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Language is a supported display-language code.
type Language string

// Supported languages.
const (
	English Language = "en"
	Arabic  Language = "ar"
	French  Language = "fr"
	Chinese Language = "zh"
)

// Default is used when nothing valid is stored.
const Default = English

// StorageKey is the kv key holding the preference.
const StorageKey = "movie-app-language"

// Supported lists the selectable languages in menu order.
var Supported = []Language{English, Arabic, French, Chinese}

var labels = map[Language]string{
	English: "English",
	Arabic:  "العربية",
	French:  "Français",
	Chinese: "中文",
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Arabic,
	language.French,
	language.Chinese,
})

// Label returns the language's name in that language.
func (l Language) Label() string {
	if label, ok := labels[l]; ok {
		return label
	}
	return string(l)
}

// Tag returns the BCP 47 tag for l.
func (l Language) Tag() language.Tag {
	return language.Make(string(l))
}

// Parse resolves user input such as "fr" or "en-GB" to a supported language.
func Parse(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	for _, l := range Supported {
		if strings.EqualFold(s, string(l)) {
			return l, true
		}
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence < language.High {
		return "", false
	}
	return Supported[idx], true
}

// Next returns the language after l in menu order, wrapping around.
func Next(l Language) Language {
	for i, candidate := range Supported {
		if candidate == l {
			return Supported[(i+1)%len(Supported)]
		}
	}
	return Default
}

// Projection is what the rendering layer applies to its root container.
type Projection struct {
	Code string
	RTL  bool
	Dir  string
	Tag  language.Tag
}

// rtlScripts are the scripts written right to left among those a supported
// language may resolve to.
var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Thaa": true,
	"Syrc": true,
}

// Project derives the rendering projection for l.
func Project(l Language) Projection {
	tag := l.Tag()
	script, _ := tag.Script()
	rtl := rtlScripts[script.String()]

	dir := "ltr"
	if rtl {
		dir = "rtl"
	}
	return Projection{
		Code: string(l),
		RTL:  rtl,
		Dir:  dir,
		Tag:  tag,
	}
}

// Printer returns a message printer that formats numbers for l.
func Printer(l Language) *message.Printer {
	return message.NewPrinter(l.Tag())
}

// FormatCount renders n with the grouping conventions of l.
func FormatCount(l Language, n int) string {
	return Printer(l).Sprintf("%d", n)
}

// FormatMoney renders a US dollar amount with the grouping of l, or "N/A"
// when the amount is unknown.
func FormatMoney(l Language, amount int64) string {
	if amount <= 0 {
		return "N/A"
	}
	return "$" + Printer(l).Sprintf("%d", amount)
}

// Store is the persisted language preference.
type Store struct {
	*persist.Preference[Language]
}

// NewStore creates a language store. apply, when non-nil, receives the
// projection after every Load and Set.
func NewStore(store kv.Store, logger *zap.Logger, apply func(Projection)) *Store {
	opts := []persist.PreferenceOption[Language]{
		persist.WithLogger[Language](logger),
	}
	if apply != nil {
		opts = append(opts, persist.WithObserver(func(l Language) {
			apply(Project(l))
		}))
	}
	return &Store{
		Preference: persist.NewPreference(store, StorageKey, Supported, Default, opts...),
	}
}

// Projection returns the projection of the current value.
func (s *Store) Projection() Projection {
	return Project(s.Value())
}
