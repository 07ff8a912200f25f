// Package cli provides output formatting helpers for esprune commands.
package cli
