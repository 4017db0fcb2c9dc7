// Package types defines the shared data model for the talentgraph knowledge
// graph: node labels, relationship types, the structured resume record produced
// by entity extraction, and the projected document corpus used for retrieval.
package types
