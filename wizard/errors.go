package wizard

import (
	"errors"
	"fmt"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

// Guard failures: a transition was requested whose completion predicate does
// not hold. No collaborator call is made in these cases.
var (
	ErrNoPlan           = errors.New("a content plan must be generated before continuing")
	ErrEmptyScript      = errors.New("the script can't be empty")
	ErrRenderIncomplete = errors.New("the render hasn't finished yet")
	ErrRenderInFlight   = errors.New("can't go back while the render is running")
	ErrNoBackStep       = errors.New("there is no earlier step to return to")
	ErrNotDelivered     = errors.New("nothing to schedule until the render is delivered")
	ErrUnknownAsset     = errors.New("unknown asset")
	ErrNotImageFlow     = errors.New("regeneration is only available for the image template")
)

// WrongStepError reports an operation invoked outside the step it belongs to.
type WrongStepError struct {
	Op   string
	Want types.Step
	Got  types.Step
}

func (e *WrongStepError) Error() string {
	return fmt.Sprintf("%s is only available at the %s step (current step: %s)", e.Op, e.Want, e.Got)
}

// SelectionCountError reports an attempt to start rendering with the wrong
// number of selected assets. The count must match exactly, not at least.
type SelectionCountError struct {
	Want, Got int
}

func (e *SelectionCountError) Error() string {
	return fmt.Sprintf("exactly %d asset(s) must be selected (currently %d)", e.Want, e.Got)
}

// userFacing is implemented by collaborator errors that carry a message ready
// to show the user. The client package decodes service responses into these
// at the call boundary.
type userFacing interface {
	UserMessage() string
}

// userMessage converts any collaborator error into a string fit for display.
func userMessage(err error, fallback string) string {
	var uf userFacing
	if errors.As(err, &uf) {
		if msg := uf.UserMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
