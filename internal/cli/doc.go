// Package cli implements the interactive minifeed REPL.
//
// The App wires configuration, logging, the SQLite-backed store and the feed
// core, then reads commands from stdin. Every command maps to one core call;
// errors from the core are translated into short user messages here and
// nowhere else.
package cli
