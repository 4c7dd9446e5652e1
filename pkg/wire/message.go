package wire

// MsgType classifies an inbound or outbound bus message.
type MsgType uint8

const (
	MsgInvalid MsgType = iota
	MsgCall
	MsgReturn
	MsgError
	MsgSignal
)

func (t MsgType) String() string {
	switch t {
	case MsgCall:
		return "method_call"
	case MsgReturn:
		return "method_return"
	case MsgError:
		return "error"
	case MsgSignal:
		return "signal"
	default:
		return "invalid"
	}
}

// Message is the narrow view of a bus message the dispatch core needs:
// routing headers, a serial for reply correlation and a body of values.
// Header and body encoding to the wire format live behind [Conn].
type Message struct {
	Type        MsgType
	Serial      uint32
	ReplySerial uint32
	Destination string
	Path        string
	Iface       string
	Member      string
	ErrName     string
	Body        []Value
}

// NewCall builds a method call message. The serial is assigned by the
// connection when the message is sent.
func NewCall(dest, path, iface, member string) *Message {
	return &Message{
		Type:        MsgCall,
		Destination: dest,
		Path:        path,
		Iface:       iface,
		Member:      member,
	}
}

// NewSignal builds a signal message originating at the given path.
func NewSignal(path, iface, member string) *Message {
	return &Message{
		Type:   MsgSignal,
		Path:   path,
		Iface:  iface,
		Member: member,
	}
}

// CallTarget extracts the routing target of a method call. ok is false for
// anything that is not a call or that lacks the target headers; such
// messages are not the dispatch engine's concern.
func (m *Message) CallTarget() (iface, path, member string, ok bool) {
	if m.Type != MsgCall || m.Iface == "" || m.Member == "" {
		return "", "", "", false
	}
	return m.Iface, m.Path, m.Member, true
}

// Return builds a method return addressed to this call's serial.
func (m *Message) Return() *Message {
	return &Message{
		Type:        MsgReturn,
		ReplySerial: m.Serial,
	}
}

// Error builds an error reply carrying the given symbolic error name,
// addressed to this call's serial.
func (m *Message) Error(name string) *Message {
	return &Message{
		Type:        MsgError,
		ReplySerial: m.Serial,
		ErrName:     name,
	}
}

// AddArgument appends one value to the message body and returns the
// message so calls can be chained.
func (m *Message) AddArgument(v Value) *Message {
	m.Body = append(m.Body, v)
	return m
}
