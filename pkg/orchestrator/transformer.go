package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgrid/pkg/model"
)

// Transformer mutates a FormModel before it is rendered.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// Chain runs transformers in order, stopping at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, form *model.FormModel) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, form); err != nil {
				return err
			}
		}
		return nil
	})
}

// PresetTransformer applies declarative overrides read from a YAML or JSON
// document:
//
//	title: Sign up
//	fields:
//	  email:
//	    label: Work email
//	    helperText: We never share it
//	    hints: {placeholder: you@company.com}
//	  nick:
//	    rename: nickname
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Title  string                `yaml:"title"`
	Action string                `yaml:"action"`
	Method string                `yaml:"method"`
	Fields map[string]fieldPatch `yaml:"fields"`
}

type fieldPatch struct {
	Label      string            `yaml:"label"`
	HelperText string            `yaml:"helperText"`
	Rename     string            `yaml:"rename"`
	Default    any               `yaml:"defaultValue"`
	Hints      map[string]string `yaml:"hints"`
}

// NewPresetTransformer parses a preset document. JSON input is accepted
// because it is valid YAML.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFile reads a preset document from disk.
func NewPresetTransformerFromFile(path string) (*PresetTransformer, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// NewPresetTransformerFromFS reads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches onto form. Patching an unknown field is an
// error.
func (t *PresetTransformer) Transform(ctx context.Context, form *model.FormModel) error {
	if form == nil {
		return errors.New("preset transformer: form model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if title := strings.TrimSpace(t.document.Title); title != "" {
		form.Title = title
	}
	if action := strings.TrimSpace(t.document.Action); action != "" {
		form.Action = action
	}
	if method := strings.TrimSpace(t.document.Method); method != "" {
		form.Method = strings.ToUpper(method)
	}

	for name, patch := range t.document.Fields {
		field := findField(form.Fields, name)
		if field == nil {
			return fmt.Errorf("preset transformer: field %q not found", name)
		}
		applyFieldPatch(field, patch)
	}
	return nil
}

func applyFieldPatch(field *model.Field, patch fieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.HelperText != "" {
		field.HelperText = patch.HelperText
	}
	if patch.Default != nil {
		field.Default = patch.Default
	}
	if len(patch.Hints) > 0 {
		field.Hints = mergeStringMap(field.Hints, patch.Hints)
	}
	if rename := strings.TrimSpace(patch.Rename); rename != "" {
		field.Name = rename
	}
}

func findField(fields []model.Field, name string) *model.Field {
	name = strings.TrimSpace(name)
	for idx := range fields {
		if fields[idx].Name == name {
			return &fields[idx]
		}
	}
	return nil
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
