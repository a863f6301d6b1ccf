// Package controller turns user intent into at most one outstanding fetch
// and renders terminal outcomes onto a Surface.
//
// All Controller methods must be called from the UI goroutine. Outcomes
// produced by the worker reach that goroutine through the worker's Sink and
// are then passed to Deliver.
package controller
