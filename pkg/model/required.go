package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Required marks a field as mandatory. Schema files accept either a boolean or
// a string; a string enables the rule and doubles as the violation message.
type Required struct {
	Enabled bool
	Message string
}

// RequiredMessage enables the rule with a custom message.
func RequiredMessage(message string) Required {
	return Required{Enabled: true, Message: strings.TrimSpace(message)}
}

// IsRequired enables the rule with the generic fallback message.
func IsRequired() Required {
	return Required{Enabled: true}
}

func (r Required) MarshalJSON() ([]byte, error) {
	if !r.Enabled {
		return []byte("false"), nil
	}
	if r.Message != "" {
		return json.Marshal(r.Message)
	}
	return []byte("true"), nil
}

func (r *Required) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: required: %w", err)
	}
	return r.assign(raw)
}

func (r Required) MarshalYAML() (any, error) {
	if r.Enabled && r.Message != "" {
		return r.Message, nil
	}
	return r.Enabled, nil
}

func (r *Required) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("model: required: %w", err)
	}
	return r.assign(raw)
}

// IsZero lets yaml omitempty drop disabled rules.
func (r Required) IsZero() bool {
	return !r.Enabled
}

func (r *Required) assign(raw any) error {
	switch v := raw.(type) {
	case nil:
		*r = Required{}
	case bool:
		*r = Required{Enabled: v}
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			*r = Required{}
			return nil
		}
		*r = RequiredMessage(trimmed)
	default:
		return fmt.Errorf("model: required must be a boolean or a message, got %T", raw)
	}
	return nil
}
