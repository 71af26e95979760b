package settings

import (
	"strings"
)

// Parse reads the line-oriented settings format over the defaults. Blank
// lines, comments, lines without a colon and unknown keys are skipped; the
// last occurrence of a key wins.
func Parse(content string) Settings {
	result := Defaults()

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		_ = result.Set(key, unquote(strings.TrimSpace(value)))
	}

	return result
}

// Serialize renders every field as a quoted key: value line.
func Serialize(s Settings) string {
	var b strings.Builder
	for _, key := range Keys {
		value, _ := s.Get(key)
		b.WriteString(key)
		b.WriteString(`: "`)
		b.WriteString(escape(value))
		b.WriteString("\"\n")
	}
	return b.String()
}

func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return strings.ReplaceAll(value[1:len(value)-1], `\"`, `"`)
	}
	return value
}

func escape(value string) string {
	return strings.ReplaceAll(value, `"`, `\"`)
}
