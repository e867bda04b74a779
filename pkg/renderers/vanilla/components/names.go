package components

import "github.com/goliatone/go-formgrid/pkg/model"

// Canonical component names used by the vanilla renderer and default registry.
const (
	NameInput    = "input"
	NameCheckbox = "checkbox"
	NameRadio    = "radio"
	NameSelect   = "select"
	NameDate     = "date"
)

// ForKind returns the default component for a field kind, or "" when the
// kind has no widget.
func ForKind(kind model.FieldKind) string {
	switch kind {
	case model.KindText, model.KindPassword, model.KindNumber:
		return NameInput
	case model.KindCheckbox:
		return NameCheckbox
	case model.KindRadio:
		return NameRadio
	case model.KindDropdown:
		return NameSelect
	case model.KindDate:
		return NameDate
	default:
		return ""
	}
}
