// Package ui holds the plain-terminal output helpers shared by relgate
// commands: aligned tables, step progress and colour handling.
package ui
