// Package view holds the fetch state shared by the client views.
package view

// State is the lifecycle of a view's last request
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Name identifies a top-level view of the shell
type Name string

const (
	Home    Name = "home"
	News    Name = "news"
	Chat    Name = "chat"
	Profile Name = "profile"
)

// Valid reports whether n is a known view
func (n Name) Valid() bool {
	switch n {
	case Home, News, Chat, Profile:
		return true
	}
	return false
}
