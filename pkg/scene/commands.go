package scene

import "fmt"

// Command is an action offered in the context menu.
type Command int

const (
	CmdBringToFront Command = iota
	CmdSendToBack
	CmdAddText
	CmdEditText
	CmdDelete
)

func (c Command) String() string {
	switch c {
	case CmdBringToFront:
		return "Bring to Front"
	case CmdSendToBack:
		return "Send to Back"
	case CmdAddText:
		return "Add Text"
	case CmdEditText:
		return "Edit Text"
	case CmdDelete:
		return "Delete"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Commands lists the context menu entries available for the current
// selection state. Nothing is offered without a selection.
func Commands(anySelected bool) []Command {
	if !anySelected {
		return nil
	}
	return []Command{CmdBringToFront, CmdSendToBack, CmdAddText, CmdEditText, CmdDelete}
}
