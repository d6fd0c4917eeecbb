package resume

import (
	"encoding/json"
	"strings"
)

// Keywords buckets ATS-relevant terms found anywhere in a snapshot.
type Keywords struct {
	Technical   []string `json:"technical"`
	Tools       []string `json:"tools"`
	ActionVerbs []string `json:"actionVerbs"`
}

// Fixed vocabularies checked against the serialized snapshot. Order is
// preserved in the output so results are reproducible.
var (
	technicalKeywords = []string{"javascript", "python", "java", "react", "node", "html", "css", "sql"}
	toolKeywords      = []string{"git", "docker", "aws", "jenkins", "mongodb", "mysql"}
	actionVerbs       = []string{"developed", "implemented", "managed", "created", "led", "improved"}
)

// ExtractKeywords scans the whole snapshot for known technical terms, tools
// and action verbs. Matching is case-insensitive substring search over the
// serialized form, so a term inside any field counts.
func ExtractKeywords(snap Snapshot) Keywords {
	payload, err := json.Marshal(snap)
	if err != nil {
		return Keywords{Technical: []string{}, Tools: []string{}, ActionVerbs: []string{}}
	}
	haystack := strings.ToLower(string(payload))

	match := func(vocab []string) []string {
		found := make([]string, 0, len(vocab))
		for _, term := range vocab {
			if strings.Contains(haystack, term) {
				found = append(found, term)
			}
		}
		return found
	}

	return Keywords{
		Technical:   match(technicalKeywords),
		Tools:       match(toolKeywords),
		ActionVerbs: match(actionVerbs),
	}
}

// AllFound flattens the keyword buckets in bucket order.
func (k Keywords) AllFound() []string {
	out := make([]string, 0, len(k.Technical)+len(k.Tools)+len(k.ActionVerbs))
	out = append(out, k.Technical...)
	out = append(out, k.Tools...)
	out = append(out, k.ActionVerbs...)
	return out
}
