package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgrid/pkg/model"
)

// DecodeForm parses a form schema document. Structural problems such as
// duplicate names or missing options are left to model.Lint; only syntax
// errors fail decoding.
func DecodeForm(doc Document) (model.FormModel, error) {
	var form model.FormModel
	if err := decode(doc, &form); err != nil {
		return model.FormModel{}, err
	}
	for i := range form.Fields {
		form.Fields[i].Name = strings.TrimSpace(form.Fields[i].Name)
		form.Fields[i].Kind = model.FieldKind(strings.ToLower(strings.TrimSpace(string(form.Fields[i].Kind))))
	}
	return form, nil
}

func decode(doc Document, target any) error {
	raw := doc.Raw()
	switch doc.Format() {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		if err := dec.Decode(target); err != nil {
			return fmt.Errorf("schema: decode %s: %w", doc.Location(), err)
		}
	default:
		if err := yaml.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("schema: decode %s: %w", doc.Location(), err)
		}
	}
	return nil
}
