package tmpl

import (
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// Render substitutes every {{identifier}} in template with its value in data.
// Absent and null values become the empty string. Substitution is a single
// pass: substituted text is never expanded again, and {{...}} text that is
// not a valid identifier is left untouched.
func Render(template string, data Data) string {
	return RenderKeeping(template, data)
}

// RenderKeeping is Render but leaves the placeholders named in keep verbatim.
func RenderKeeping(template string, data Data, keep ...string) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	return placeholder.ReplaceAllStringFunc(template, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		for _, k := range keep {
			if k == key {
				return m
			}
		}
		return data[key].String()
	})
}

// Placeholders lists the distinct identifiers referenced by template in order
// of first appearance.
func Placeholders(template string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range placeholder.FindAllStringSubmatch(template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}
