package vanilla

import (
	"strings"

	"github.com/goliatone/go-formgrid/pkg/model"
)

// sanitizeClassList drops tokens in the renderer's own "fg-" namespace so
// hints cannot restyle internal elements.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "fg-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

// Checkboxes carry their label inline; radio groups label a group, not a
// single input.
func shouldRenderLabel(field model.Field) bool {
	if field.Kind == model.KindCheckbox {
		return false
	}
	return strings.TrimSpace(field.Hint("hideLabel")) != "true"
}

func labelSupportsFor(kind model.FieldKind) bool {
	return kind != model.KindRadio
}
