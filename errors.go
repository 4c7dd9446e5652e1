package busobj

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCfg = errors.New("busobj: invalid options")

	ErrInterfaceRegistered = errors.New("busobj: interface already registered")
	ErrRegistryFinalized   = errors.New("busobj: registry is finalized")
	ErrPathRegistered      = errors.New("busobj: path already registered")
	ErrNoSuchPath          = errors.New("busobj: no such path")
	ErrServerRegistered    = errors.New("busobj: server already registered")
	ErrNoSuchServer        = errors.New("busobj: no such server")
	ErrRunnerClosed        = errors.New("busobj: runner is shut down")

	// ErrSend wraps a transport failure while sending a reply. The call was
	// already processed at that point; only the result is lost.
	ErrSend = errors.New("busobj: could not send reply")
)

// Well-known symbolic error names used in error replies.
const (
	NameUnknownInterface = "org.freedesktop.DBus.Error.UnknownInterface"
	NameUnknownProperty  = "org.freedesktop.DBus.Error.UnknownProperty"
	NameInvalidArgs      = "org.freedesktop.DBus.Error.InvalidArgs"
	NameFailed           = "org.freedesktop.DBus.Error.Failed"
)

// CallError is a protocol-level error produced by a handler or by the
// dispatch engine itself. It is converted into an error reply carrying
// its symbolic name and human-readable message; it is never fatal to the
// dispatch loop.
type CallError struct {
	Name    string
	Message string
}

func NewCallError(name, message string) *CallError {
	return &CallError{Name: name, Message: message}
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

func errUnknownInterface(name string) *CallError {
	return NewCallError(NameUnknownInterface, "unknown interface: "+name)
}

func errUnknownProperty(name string) *CallError {
	return NewCallError(NameUnknownProperty, "unknown property: "+name)
}
