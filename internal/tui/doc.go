// Package tui implements a terminal color picker that drives a server through
// an injected Sender.
//
// Three channel sliders select a color that is sent as an LED frame whenever
// it changes, and a toggle switches between dimmed white and black.
package tui
