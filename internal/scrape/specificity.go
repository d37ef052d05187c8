package scrape

import (
	"slices"
	"strings"

	"github.com/af-corp/model-catalog/internal/catalog"
	"github.com/af-corp/model-catalog/internal/types"
)

// Specificity classes.
const (
	SpecificityTask    = "Task-Specific"
	SpecificityGeneral = "General-Purpose"
	SpecificityDomain  = "Domain-Specific"
)

// Name keywords, matched as lower-case substrings of the model name.
var (
	taskKeywords     = []string{"embed", "embedding", "rerank", "image", "video", "canvas", "reel", "diffusion"}
	generalKeywords  = []string{"chat", "instruct", "conversation", "assistant", "gpt", "llama", "claude", "sonnet", "haiku"}
	creationKeywords = []string{"generate", "create", "canvas", "reel", "stable", "diffusion"}
	domainKeywords   = []string{
		"medical", "health", "biomedical", "legal", "finance", "financial", "biology",
		"chemistry", "science", "robotics", "education", "tutor", "customer support",
	}
)

// Specificity classifies a catalog row and returns the name keywords that
// decided it:
//
//   - a task keyword in the name is Task-Specific;
//   - text in and text out is General-Purpose with a general keyword,
//     Domain-Specific otherwise;
//   - several or differing modalities are Task-Specific with a creation
//     keyword, Domain-Specific otherwise;
//   - anything else is Domain-Specific.
//
// Domain-Specific results report any domain keywords found in the name.
func Specificity(row Row) (class string, keywords []string) {
	name := strings.ToLower(row[colModelName])
	if kw := matchedKeywords(name, taskKeywords); len(kw) > 0 {
		return SpecificityTask, kw
	}

	in := lowered(types.ParseModalities(row[colInputModality]))
	out := lowered(types.ParseModalities(row[colOutputModality]))
	textOnly := []string{"text"}

	switch {
	case slices.Equal(in, textOnly) && slices.Equal(out, textOnly):
		if kw := matchedKeywords(name, generalKeywords); len(kw) > 0 {
			return SpecificityGeneral, kw
		}
	case len(in) > 1 || len(out) > 1 || (len(in) > 0 && len(out) > 0 && !slices.Equal(in, out)):
		if kw := matchedKeywords(name, creationKeywords); len(kw) > 0 {
			return SpecificityTask, kw
		}
	}
	return SpecificityDomain, matchedKeywords(name, domainKeywords)
}

// SpecificitySet classifies every named catalog row, keyed by model name.
func SpecificitySet(rows []Row) catalog.AttributeSet {
	set := catalog.AttributeSet{Name: "specificity", Key: catalog.KeyModelName}
	for _, row := range rows {
		name := strings.TrimSpace(row[colModelName])
		if name == "" {
			continue
		}
		class, kw := Specificity(row)
		set.Add(name, map[string]string{
			catalog.AttrSpecificity:         class,
			catalog.AttrSpecificityKeywords: strings.Join(kw, ", "),
		})
	}
	return set
}

func matchedKeywords(name string, keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			out = append(out, kw)
		}
	}
	return out
}

func lowered(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.ToLower(s)
	}
	return out
}
