// Package pipeline models a photographer's processing workflow as a directed
// graph and provides the structural validator and path enumerator the
// validation engine runs against it.
//
// The six node kinds form a closed set consumed through exhaustive switches.
// Nodes live in a single arena slice and are referenced by integer index,
// with a string-id lookup map built once at compile time, so cyclic graphs
// carry no pointer cycles. Cycles are legal; the enumerator bounds them with
// a per-branch revisit cap instead of rejecting them.
package pipeline
