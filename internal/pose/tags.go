package pose

import "strings"

// tagKeywords drives effect-text tag derivation. Matching is a substring
// scan over the lower-cased text; several tags may match one text.
var tagKeywords = []struct {
	tag      Tag
	keywords []string
}{
	{TagStrength, []string{"強化", "力量", "strengthen", "strength", "power"}},
	{TagFlexibility, []string{"伸展", "靈活性", "柔軟", "stretch", "flexib", "soft"}},
	{TagBalance, []string{"平衡", "balance"}},
	{TagRelax, []string{"放鬆", "舒緩", "減壓", "relax", "sooth", "destress", "de-stress"}},
}

// DeriveTags scans effect text for keywords. Text without any keyword yields
// exactly {balance}.
func DeriveTags(effect string) []Tag {
	text := strings.ToLower(effect)
	var out []Tag
	for _, entry := range tagKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				out = append(out, entry.tag)
				break
			}
		}
	}
	if len(out) == 0 {
		return []Tag{TagBalance}
	}
	return out
}
