package pose

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Language selects the display language.
type Language string

// Supported languages.
const (
	LangZH Language = "zh"
	LangEN Language = "en"
)

// ParseLanguage maps a config or flag value onto a language, defaulting to zh.
func ParseLanguage(value string) Language {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "en", "en-us", "en_us", "english":
		return LangEN
	default:
		return LangZH
	}
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == LangEN {
		return LangZH
	}
	return LangEN
}

var (
	difficultyZH = map[Difficulty]string{
		Beginner:     "初級",
		Intermediate: "中級",
		Advanced:     "高級",
	}
	tagZH = map[Tag]string{
		TagStrength:    "增強力量",
		TagFlexibility: "提升柔軟度",
		TagBalance:     "改善平衡",
		TagRelax:       "放鬆減壓",
	}
)

// DifficultyLabel renders a difficulty for display.
func DifficultyLabel(d Difficulty, lang Language) string {
	if lang == LangZH {
		if label, ok := difficultyZH[d]; ok {
			return label
		}
	}
	return titleEN(string(d))
}

// TagLabel renders an effect tag for display.
func TagLabel(t Tag, lang Language) string {
	if lang == LangZH {
		if label, ok := tagZH[t]; ok {
			return label
		}
	}
	return titleEN(string(t))
}

// A Caser holds state, so one is built per call.
func titleEN(s string) string {
	return cases.Title(language.English).String(s)
}
