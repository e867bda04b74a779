// Package model defines the declarative field schema consumed by the form
// renderers along with the Values container that carries a form session's
// in-progress input.
//
// A Field describes one input: its name, label, Kind (text, password, number,
// checkbox, radio, dropdown, date), default value, ordered Options for radio
// and dropdown kinds, validation Rules, helper text, and free-form per-kind
// rendering Hints such as `placeholder`, `autocomplete` or `disabled`.
//
// Each Kind maps onto a fixed Go value type inside Values:
//
//	text, password     string
//	number             float64 ("" before input, nil once submitted blank)
//	checkbox           bool
//	radio, dropdown    string (the option value, stringified)
//	date               time.Time truncated to a day (nil when empty)
//
// InitialValues computes the starting Values of a session and DecodeValues
// converts a submitted url.Values payload into the same shape.
package model
