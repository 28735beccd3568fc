// Package views holds the templ components of the portfolio site.
package views

//go:generate templ generate
