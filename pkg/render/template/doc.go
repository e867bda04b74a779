// Package template defines the template engine contract shared by the form,
// grid and page renderers.
package template
