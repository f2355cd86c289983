// Package cli provides the interactive DevLog terminal client.
//
// It wires configuration, the HTTP API client, the keyring session store and
// a REPL. Typical flow: restore a saved session (or prompt for login), start
// a background connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout, with the session kept in the OS keyring
//   - Dashboard, stats and a public portfolio timeline
//   - Entries: list with search and category filter, show, add, edit, delete, export
//   - Challenges: list, show with entries by day, add, edit, delete (cascades)
//   - AI helpers: takeaway, topic suggestions, deep dive with sources
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
