package analyzers

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

func init() {
	Registry["topic-extraction"] = TopicExtraction
}

// Topic is one README keyword with its occurrence count.
type Topic struct {
	Word  string
	Count int
}

// TopicsData is the `topics` receipt section (Topics preset).
type TopicsData struct {
	Topics []Topic
	Source string
}

var topicWordPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9_-]{2,}`)

// topicStopwords excludes common English filler so the topic list
// reflects domain vocabulary rather than grammar.
var topicStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "this": true, "that": true,
	"with": true, "from": true, "your": true, "you": true, "are": true,
	"was": true, "will": true, "can": true, "all": true, "use": true,
	"using": true, "into": true, "have": true, "has": true, "not": true,
	"but": true, "which": true, "when": true, "then": true, "each": true,
	"more": true, "some": true, "any": true, "also": true, "these": true,
}

const topTopicsLimit = 20

var readmeNames = []string{"README.md", "Readme.md", "README", "README.txt", "readme.md"}

// TopicExtraction builds a keyword-frequency census over the repo's
// README (Topics preset, spec.md §4.10). Returns CapabilityStatus::
// Unavailable when no README is found, rather than an empty section.
func TopicExtraction(in Input) Result {
	var text, source string
	for _, name := range readmeNames {
		data, err := os.ReadFile(filepath.Join(in.Root, name))
		if err == nil {
			text, source = string(data), name
			break
		}
	}
	if text == "" {
		return Result{Capability: unavailable("no README file found at scan root")}
	}

	counts := map[string]int{}
	for _, w := range topicWordPattern.FindAllString(text, -1) {
		lw := strings.ToLower(w)
		if topicStopwords[lw] {
			continue
		}
		counts[lw]++
	}

	topics := make([]Topic, 0, len(counts))
	for w, c := range counts {
		topics = append(topics, Topic{Word: w, Count: c})
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Count != topics[j].Count {
			return topics[i].Count > topics[j].Count
		}
		return topics[i].Word < topics[j].Word
	})
	if len(topics) > topTopicsLimit {
		topics = topics[:topTopicsLimit]
	}

	return Result{Data: TopicsData{Topics: topics, Source: source}, Capability: available()}
}
