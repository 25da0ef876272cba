package pose

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Placeholders for fields the source left empty.
const (
	PlaceholderName     = "未命名瑜伽動作"
	PlaceholderNameEN   = "Unnamed Yoga Pose"
	PlaceholderEffect   = "暫無描述"
	PlaceholderEffectEN = "No description available"
	PlaceholderImage    = "https://via.placeholder.com/150?text=No+Image"
)

// Source field names per canonical field, in priority order.
var (
	nameKeys       = []string{"name", "name_zh", "title", "title_zh"}
	nameENKeys     = []string{"name_en", "english_name", "title_en"}
	effectKeys     = []string{"effect", "description", "description_zh"}
	effectENKeys   = []string{"effect_en", "english_description", "description_en"}
	cautionKeys    = []string{"caution", "caution_zh", "precautions"}
	cautionENKeys  = []string{"caution_en", "precautions_en"}
	difficultyKeys = []string{"difficulty", "level"}
	imageKeys      = []string{"image", "imageUrl", "image_url", "img", "picture"}
	videoKeys      = []string{"video", "videoUrl", "video_url"}
	tagKeys        = []string{"effectTags", "effect_tags", "tags"}
)

// Normalize maps a raw API or dataset object onto a Record. Every field a
// view relies on is populated afterwards.
func Normalize(raw map[string]any) Record {
	rec := Record{
		ID:         coerceID(raw["id"]),
		Name:       firstString(raw, nameKeys),
		NameEN:     firstString(raw, nameENKeys),
		Effect:     firstString(raw, effectKeys),
		EffectEN:   firstString(raw, effectENKeys),
		Caution:    firstString(raw, cautionKeys),
		CautionEN:  firstString(raw, cautionENKeys),
		Difficulty: ParseDifficulty(firstString(raw, difficultyKeys)),
		Image:      firstString(raw, imageKeys),
		Video:      firstString(raw, videoKeys),
	}

	rec.EffectTags = explicitTags(raw)
	if len(rec.EffectTags) == 0 {
		rec.EffectTags = DeriveTags(rec.Effect)
	}

	if rec.Name == "" {
		rec.Name = PlaceholderName
	}
	if rec.NameEN == "" {
		rec.NameEN = PlaceholderNameEN
	}
	if rec.Effect == "" {
		rec.Effect = PlaceholderEffect
	}
	if rec.EffectEN == "" {
		rec.EffectEN = PlaceholderEffectEN
	}
	if rec.Image == "" {
		rec.Image = PlaceholderImage
	}
	return rec
}

// NormalizeAll normalizes each raw object in order.
func NormalizeAll(raws []map[string]any) []Record {
	out := make([]Record, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw))
	}
	return out
}

func firstString(raw map[string]any, keys []string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			if s := v.String(); s != "" {
				return s
			}
		}
	}
	return ""
}

func coerceID(v any) int {
	switch id := v.(type) {
	case int:
		return id
	case int64:
		if id >= math.MinInt && id <= math.MaxInt {
			return int(id)
		}
	case float64:
		if n, ok := floatID(id); ok {
			return n
		}
	case json.Number:
		return numericID(id.String())
	case string:
		return numericID(id)
	}
	return 0
}

// numericID parses "7" and "7.0" alike; fractions and garbage are 0.
func numericID(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	n, _ := floatID(f)
	return n
}

// floatID converts an integral float that fits in an int.
func floatID(f float64) (int, bool) {
	if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

// explicitTags returns the known tags the source supplied, or nil when the
// source supplied none.
func explicitTags(raw map[string]any) []Tag {
	for _, key := range tagKeys {
		var names []string
		switch v := raw[key].(type) {
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					names = append(names, s)
				}
			}
		case []string:
			names = v
		case []Tag:
			for _, t := range v {
				names = append(names, string(t))
			}
		default:
			continue
		}
		if tags := canonicalTags(names); len(tags) > 0 {
			return tags
		}
	}
	return nil
}

func canonicalTags(names []string) []Tag {
	seen := make(map[Tag]bool, len(names))
	for _, name := range names {
		if t, ok := ParseTag(name); ok {
			seen[t] = true
		}
	}
	var out []Tag
	for _, t := range Tags {
		if seen[t] {
			out = append(out, t)
		}
	}
	return out
}
