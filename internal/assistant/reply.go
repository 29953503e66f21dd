package assistant

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/customerlookup/internal/core"
)

// Reply messages spoken back to the assistant.
const (
	MsgMissingValue = "Error: Phone number is required"
	MsgEmptySource  = "No customer data found in system"
	MsgFailure      = "Error: Unable to lookup customer. Please proceed manually."
)

// Reply is the text handed back to the assistant for one lookup.
type Reply struct {
	Message string
	Found   bool
}

// FoundReply greets a returning customer by name.
func FoundReply(name string) Reply {
	return Reply{
		Message: fmt.Sprintf("Customer found: %s. This is a returning customer - greet them personally by name!", name),
		Found:   true,
	}
}

// NewCustomerReply asks the assistant to welcome an unknown caller.
func NewCustomerReply(mode core.SearchMode, value string) Reply {
	return Reply{
		Message: fmt.Sprintf("New customer with %s %s. Welcome them warmly and collect their information.", mode, value),
	}
}

// ReplyFor turns a lookup result into the reply for the assistant.
// Every error becomes a spoken message; none of them reach the caller
// as a transport failure.
func ReplyFor(out *core.Outcome, err error) Reply {
	switch {
	case errors.Is(err, core.ErrMissingSearchValue):
		return Reply{Message: MsgMissingValue}
	case errors.Is(err, core.ErrEmptySource):
		return Reply{Message: MsgEmptySource}
	case err != nil || out == nil:
		return Reply{Message: MsgFailure}
	case out.Found:
		return FoundReply(out.CustomerName)
	default:
		return NewCustomerReply(out.Mode, out.SearchValue)
	}
}

// Render writes reply in the shape matching req.Kind. Unknown kinds are
// answered as plain text.
func Render(w http.ResponseWriter, req Request, reply Reply) error {
	f, ok := Get(req.Kind)
	if !ok {
		return writeText(w, reply.Message)
	}
	return f.Write(w, req, reply.Message)
}
