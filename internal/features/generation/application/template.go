package application

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	templateVarPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)
	templateRefPattern = regexp.MustCompile(`\{\{[^{}]*\}\}`)
)

// RenderTemplate substitutes every {{name}} reference in template with the
// corresponding value from vars. An unresolved or malformed reference is a
// configuration error: the render fails instead of silently emitting the
// placeholder.
func RenderTemplate(template string, vars map[string]string) (string, error) {
	var malformed []string
	for _, ref := range templateRefPattern.FindAllString(template, -1) {
		if !templateVarPattern.MatchString(ref) {
			malformed = append(malformed, ref)
		}
	}
	if len(malformed) > 0 {
		return "", fmt.Errorf("malformed template reference(s): %s", strings.Join(malformed, ", "))
	}

	var missing []string
	out := templateVarPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := templateVarPattern.FindStringSubmatch(match)[1]
		value, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("unresolved template variable(s): %s", strings.Join(missing, ", "))
	}
	return out, nil
}
