package kiosk

// Action is something the user asked the kiosk to do.
type Action int

const (
	None Action = iota
	Shutdown
	Up
	Down
	Select
	Quit
)

func (a Action) String() string {
	switch a {
	case None:
		return "none"
	case Shutdown:
		return "shutdown"
	case Up:
		return "up"
	case Down:
		return "down"
	case Select:
		return "select"
	case Quit:
		return "quit"
	}
	return "N/A"
}

var functions = map[string]Action{
	"shutdown": Shutdown,
	"up":       Up,
	"down":     Down,
	"select":   Select,
	"quit":     Quit,
}

// ActionFor maps a button function name to its action.
func ActionFor(function string) (Action, bool) {
	a, ok := functions[function]
	return a, ok
}
