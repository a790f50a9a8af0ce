package scanner

import "strings"

// embeddedFragment is a detected Child-language span inside a Parent
// file, with its own content ready for classify/countTokens.
type embeddedFragment struct {
	lang    string
	content []byte
}

// fenceLangAlias maps a Markdown fenced-code-block info-string to the
// canonical language name in registry.
var fenceLangAlias = map[string]string{
	"go":         "Go",
	"golang":     "Go",
	"rust":       "Rust",
	"rs":         "Rust",
	"python":     "Python",
	"py":         "Python",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"c":          "C",
	"cpp":        "C++",
	"c++":        "C++",
	"sh":         "Shell",
	"bash":       "Shell",
	"shell":      "Shell",
	"yaml":       "YAML",
	"yml":        "YAML",
	"toml":       "TOML",
	"json":       "JSON",
	"sql":        "SQL",
	"css":        "CSS",
	"html":       "HTML",
}

// detectEmbedded inspects a Parent file's content for embedded
// Child-language spans, per the scanner's two supported detectors:
// Markdown fenced code blocks, and HTML <script>/<style> blocks.
func detectEmbedded(lang string, content []byte) []embeddedFragment {
	switch lang {
	case "Markdown":
		return markdownFences(content)
	case "HTML":
		return htmlScriptStyle(content)
	default:
		return nil
	}
}

func markdownFences(content []byte) []embeddedFragment {
	var frags []embeddedFragment
	lines := strings.Split(string(content), "\n")

	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		var fence string
		switch {
		case strings.HasPrefix(trimmed, "```"):
			fence = "```"
		case strings.HasPrefix(trimmed, "~~~"):
			fence = "~~~"
		default:
			i++
			continue
		}

		info := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, fence)))
		canonical, known := fenceLangAlias[info]
		start := i + 1
		end := start
		closed := false
		for end < len(lines) {
			if strings.HasPrefix(strings.TrimSpace(lines[end]), fence) {
				closed = true
				break
			}
			end++
		}
		if !closed {
			break
		}
		if known {
			body := strings.Join(lines[start:end], "\n")
			frags = append(frags, embeddedFragment{lang: canonical, content: []byte(body)})
		}
		i = end + 1
	}

	return frags
}

func htmlScriptStyle(content []byte) []embeddedFragment {
	var frags []embeddedFragment
	frags = append(frags, extractTagBodies(string(content), "<script", "</script>", "JavaScript")...)
	frags = append(frags, extractTagBodies(string(content), "<style", "</style>", "CSS")...)
	return frags
}

func extractTagBodies(src, openPrefix, closeTag, lang string) []embeddedFragment {
	var frags []embeddedFragment
	lower := strings.ToLower(src)
	openPrefixLower := strings.ToLower(openPrefix)
	closeTagLower := strings.ToLower(closeTag)

	pos := 0
	for {
		openIdx := strings.Index(lower[pos:], openPrefixLower)
		if openIdx < 0 {
			break
		}
		openIdx += pos
		tagEnd := strings.IndexByte(lower[openIdx:], '>')
		if tagEnd < 0 {
			break
		}
		bodyStart := openIdx + tagEnd + 1
		closeIdx := strings.Index(lower[bodyStart:], closeTagLower)
		if closeIdx < 0 {
			break
		}
		closeIdx += bodyStart
		body := src[bodyStart:closeIdx]
		if strings.TrimSpace(body) != "" {
			frags = append(frags, embeddedFragment{lang: lang, content: []byte(body)})
		}
		pos = closeIdx + len(closeTagLower)
	}

	return frags
}
