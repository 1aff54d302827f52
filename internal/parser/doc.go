// Package parser turns argument vectors into parse results against a
// command.Schema. It builds a cobra command tree from the schema for every
// call, so flag state never carries over between invocations, and renders
// help text for any node of that tree.
package parser
