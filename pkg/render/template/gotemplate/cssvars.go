package gotemplate

import (
	"sort"
	"strings"
)

var cssValueCleaner = strings.NewReplacer(";", "", "}", "", "<", "")

// CSSVarsRule renders custom properties as a deterministic ":root" rule.
// Names missing the "--" prefix receive it.
func CSSVarsRule(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	normalized := make(map[string]string, len(vars))
	for key, value := range vars {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		normalized[name] = cssValueCleaner.Replace(value)
	}
	names := make([]string, 0, len(normalized))
	for name := range normalized {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, name := range names {
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(normalized[name])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
