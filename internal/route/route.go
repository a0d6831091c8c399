// Package route maps the URL fragment to one of the application views.
// The fragment is the only routing key: navigation writes a fragment and
// the view follows from it.
package route

import "strings"

type View int

const (
	Home View = iota
	Dashboard
	Report
	Schedule
	Admin
	About
	Signup
)

// Views returns every view in navigation order.
func Views() []View {
	return []View{Home, Dashboard, Report, Schedule, Admin, About, Signup}
}

// Fragment is the page name written after '#'.
func (v View) Fragment() string {
	switch v {
	case Home:
		return "home"
	case Dashboard:
		return "dashboard"
	case Report:
		return "report"
	case Schedule:
		return "schedule"
	case Admin:
		return "admin"
	case About:
		return "about"
	case Signup:
		return "signup"
	}
	return "home"
}

func (v View) Title() string {
	switch v {
	case Home:
		return "Home"
	case Dashboard:
		return "Dashboard"
	case Report:
		return "Report Issue"
	case Schedule:
		return "Schedule"
	case Admin:
		return "Admin"
	case About:
		return "About"
	case Signup:
		return "Sign Up"
	}
	return "Home"
}

func (v View) String() string {
	return v.Fragment()
}

// Normalize strips a leading '#' and maps the empty fragment to "home".
// Unknown page names are kept as they are.
func Normalize(fragment string) string {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" {
		return Home.Fragment()
	}
	return fragment
}

// Lookup reports the view named by fragment, if any.
func Lookup(fragment string) (View, bool) {
	page := Normalize(fragment)
	for _, v := range Views() {
		if v.Fragment() == page {
			return v, true
		}
	}
	return Home, false
}

// Resolve returns the view to render for fragment. Empty and unknown
// fragments fall back to Home.
func Resolve(fragment string) View {
	v, _ := Lookup(fragment)
	return v
}

// Link is one navigation entry.
type Link struct {
	Page   string
	Title  string
	Href   string
	Active bool
}

// Links marks exactly the entry whose page equals the fragment. An unknown
// fragment leaves every entry inactive.
func Links(fragment string) []Link {
	page := Normalize(fragment)
	links := make([]Link, 0, len(Views()))
	for _, v := range Views() {
		links = append(links, Link{
			Page:   v.Fragment(),
			Title:  v.Title(),
			Href:   Navigate(v),
			Active: v.Fragment() == page,
		})
	}
	return links
}

// State is the router state after a fragment change.
type State struct {
	Fragment string
	View     View
	Links    []Link
}

// Transition computes the state for a new fragment value.
func Transition(fragment string) State {
	return State{
		Fragment: Normalize(fragment),
		View:     Resolve(fragment),
		Links:    Links(fragment),
	}
}

// Navigate returns the fragment to write to reach v. Views are never set
// directly; the fragment change drives the transition.
func Navigate(v View) string {
	return "#" + v.Fragment()
}
