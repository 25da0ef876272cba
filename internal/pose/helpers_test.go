package pose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbedURL(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=abc123":  "https://www.youtube.com/embed/abc123",
		"https://youtube.com/watch?v=abc123&t=10": "https://www.youtube.com/embed/abc123",
		"https://youtu.be/xyz789":                 "https://www.youtube.com/embed/xyz789",
		"https://www.youtube.com/embed/already":   "https://www.youtube.com/embed/already",
		"https://vimeo.com/123":                   "https://vimeo.com/123",
		"":                                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, EmbedURL(in), in)
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "初級", DifficultyLabel(Beginner, LangZH))
	assert.Equal(t, "Advanced", DifficultyLabel(Advanced, LangEN))
	assert.Equal(t, "放鬆減壓", TagLabel(TagRelax, LangZH))
	assert.Equal(t, "Flexibility", TagLabel(TagFlexibility, LangEN))
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, LangEN, ParseLanguage("EN"))
	assert.Equal(t, LangZH, ParseLanguage("zh-TW"))
	assert.Equal(t, LangZH, ParseLanguage(""))
	assert.Equal(t, LangZH, LangEN.Toggle())
}

func TestFilters(t *testing.T) {
	records := []Record{
		{ID: 1, Difficulty: Beginner, EffectTags: []Tag{TagStrength}},
		{ID: 2, Difficulty: Advanced, EffectTags: []Tag{TagRelax, TagBalance}},
		{ID: 3, Difficulty: Advanced, EffectTags: []Tag{TagStrength, TagRelax}},
	}

	assert.Len(t, FilterByTag(records, ""), 3)
	assert.Equal(t, []Record{records[1], records[2]}, FilterByTag(records, TagRelax))
	assert.Equal(t, []Record{records[0]}, FilterByDifficulty(records, Beginner))

	got, ok := FindByID(records, 3)
	assert.True(t, ok)
	assert.Equal(t, records[2], got)
	_, ok = FindByID(records, 999)
	assert.False(t, ok)
}

func TestRecordDisplay(t *testing.T) {
	r := Record{Name: "鴿式", NameEN: "Pigeon", Caution: "膝傷避免"}
	assert.Equal(t, "Pigeon", r.DisplayName(LangEN))
	assert.Equal(t, "鴿式", r.DisplayName(LangZH))
	assert.Equal(t, "膝傷避免", r.DisplayCaution(LangEN))
}
