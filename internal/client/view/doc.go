// Package view holds the client's pure presentation logic: in-memory entry
// filtering and sorting, dashboard composition, challenge progress and the
// portfolio timeline, plus plain-text rendering of each for the terminal.
package view
