// Package cli provides the interactive PantryKeeper command-line client.
//
// It wires configuration, the HTTP API client and a read–eval–print loop.
// A background watcher probes the server and flips the prompt between
// online and offline. Items are rendered as tables with go-pretty.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
