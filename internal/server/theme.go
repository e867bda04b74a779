package server

import (
	"sort"

	theme "github.com/goliatone/go-theme"
)

// themeTokens are the design tokens of the application theme.
var themeTokens = map[string]string{
	"color-primary":   "#4f46e5",
	"color-secondary": "#14b8a6",
	"color-border":    "#e5e7eb",
	"radius":          "10px",
	"control-padding": "6px 10px",
	"font-size":       "14px",
}

// DefaultTheme builds the process-wide theme once at startup. Every token is
// exposed as a --fg-<token> CSS custom property.
func DefaultTheme() *theme.RendererConfig {
	tokens := make(map[string]string, len(themeTokens))
	vars := make(map[string]string, len(themeTokens))
	for key, value := range themeTokens {
		tokens[key] = value
		vars["--fg-"+key] = value
	}
	return &theme.RendererConfig{
		Theme:    "formgrid",
		Variant:  "light",
		Tokens:   tokens,
		CSSVars:  vars,
		AssetURL: func(name string) string { return assetsPrefix + name },
	}
}

func tokenNames(cfg *theme.RendererConfig) []string {
	names := make([]string, 0, len(cfg.Tokens))
	for name := range cfg.Tokens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
