// Package orchestrator wires the schema loader, the decoders, an optional
// preset transformer and a renderer registry into a single Generate call.
package orchestrator
