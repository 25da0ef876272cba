package pose

import "strings"

// Difficulty is the canonical difficulty level of a pose.
type Difficulty string

// Difficulty levels.
const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Difficulties lists the levels in ascending order.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// ParseDifficulty maps a source value onto a level. Unknown values are
// beginner.
func ParseDifficulty(value string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "intermediate", "medium", "中級", "中级":
		return Intermediate
	case "advanced", "hard", "高級", "高级":
		return Advanced
	default:
		return Beginner
	}
}

// Tag is an effect category.
type Tag string

// Effect tags in canonical order.
const (
	TagStrength    Tag = "strength"
	TagFlexibility Tag = "flexibility"
	TagBalance     Tag = "balance"
	TagRelax       Tag = "relax"
)

// Tags lists every tag in canonical order.
var Tags = []Tag{TagStrength, TagFlexibility, TagBalance, TagRelax}

// ParseTag reports the tag named by value.
func ParseTag(value string) (Tag, bool) {
	t := Tag(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Tags {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// Record is the canonical pose representation handed to views.
type Record struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	NameEN     string     `json:"name_en"`
	Effect     string     `json:"effect"`
	EffectEN   string     `json:"effect_en"`
	Caution    string     `json:"caution,omitempty"`
	CautionEN  string     `json:"caution_en,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	Image      string     `json:"image"`
	Video      string     `json:"video,omitempty"`
	EffectTags []Tag      `json:"effectTags"`
}

// HasTag reports whether the record carries t.
func (r Record) HasTag(t Tag) bool {
	for _, have := range r.EffectTags {
		if have == t {
			return true
		}
	}
	return false
}

// DisplayName returns the name in the requested language.
func (r Record) DisplayName(lang Language) string {
	if lang == LangEN {
		return r.NameEN
	}
	return r.Name
}

// DisplayEffect returns the effect text in the requested language.
func (r Record) DisplayEffect(lang Language) string {
	if lang == LangEN {
		return r.EffectEN
	}
	return r.Effect
}

// DisplayCaution returns the caution text in the requested language,
// falling back to the other language when only one is present.
func (r Record) DisplayCaution(lang Language) string {
	if lang == LangEN && r.CautionEN != "" {
		return r.CautionEN
	}
	if r.Caution != "" {
		return r.Caution
	}
	return r.CautionEN
}

// Map returns the record in raw canonical form. Normalize(r.Map()) == r for
// any normalized r.
func (r Record) Map() map[string]any {
	out := map[string]any{
		"id":         r.ID,
		"name":       r.Name,
		"name_en":    r.NameEN,
		"effect":     r.Effect,
		"effect_en":  r.EffectEN,
		"difficulty": string(r.Difficulty),
		"image":      r.Image,
	}
	if r.Caution != "" {
		out["caution"] = r.Caution
	}
	if r.CautionEN != "" {
		out["caution_en"] = r.CautionEN
	}
	if r.Video != "" {
		out["video"] = r.Video
	}
	tags := make([]any, 0, len(r.EffectTags))
	for _, t := range r.EffectTags {
		tags = append(tags, string(t))
	}
	out["effectTags"] = tags
	return out
}
