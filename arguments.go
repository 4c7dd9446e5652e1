package busobj

import (
	"fmt"

	"github.com/ostraca/busobj/pkg/wire"
)

// Call is the context a method handler is invoked with. It wraps the
// inbound message and offers positional argument extraction; there is no
// up-front signature check against the method's declared arguments, so
// handlers fail per-position instead.
type Call struct {
	Msg *wire.Message
}

// Arg extracts the value at the given position.
func (c *Call) Arg(index int) (wire.Value, *CallError) {
	if index < 0 || index >= len(c.Msg.Body) {
		return wire.Value{}, invalidArgument(index)
	}
	return c.Msg.Body[index], nil
}

// StringArg extracts the value at the given position, requiring a
// string-kinded value.
func (c *Call) StringArg(index int) (string, *CallError) {
	val, cerr := c.Arg(index)
	if cerr != nil {
		return "", cerr
	}
	s, ok := val.AsString()
	if !ok {
		return "", invalidArgument(index)
	}
	return s, nil
}

func invalidArgument(index int) *CallError {
	return NewCallError(NameInvalidArgs, fmt.Sprintf("invalid argument at %d", index))
}
