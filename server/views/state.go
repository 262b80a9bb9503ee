// Package views holds the page models rendered by the web handlers and the
// fetch logic that fills them.
package views

type State int

const (
	StateLoading State = iota
	StateError
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Status is embedded by every page that loads remote data on mount.
type Status struct {
	State State
	Error string
}

func (s *Status) Fail(message string) {
	s.State = StateError
	s.Error = message
}

func (s *Status) Ready() {
	s.State = StateReady
	s.Error = ""
}

func (s Status) IsLoading() bool { return s.State == StateLoading }
func (s Status) IsError() bool   { return s.State == StateError }
func (s Status) IsReady() bool   { return s.State == StateReady }
