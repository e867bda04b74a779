package pages

// Home renders the landing page body.
func (v *Views) Home() (string, error) {
	demos := []any{}
	for _, item := range Navigation[1:4] {
		demos = append(demos, map[string]any{"href": item.Href, "label": item.Label})
	}
	return v.execute("templates/home.tmpl", "home", map[string]any{
		"heading": "Vibe Coding",
		"intro":   "This page uses a reusable component:",
		"demos":   demos,
	})
}
