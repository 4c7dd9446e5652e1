package busobj

import (
	"slices"

	"github.com/ostraca/busobj/pkg/wire"
)

// Argument describes one method or signal argument. It only feeds
// introspection; call payloads are not validated against it.
type Argument struct {
	Name      string
	Signature string
}

// Annotation is a free-form name/value pair attached to methods,
// properties and signals.
type Annotation struct {
	Name  string
	Value string
}

// MethodHandler is invoked with the inbound call context and returns the
// ordered result values, or a protocol error to reply with.
type MethodHandler func(*Call) ([]wire.Value, *CallError)

// Method bundles a handler with its declared argument lists. Build it with
// the chaining Add* methods, then hand it to [Interface.AddMethod]; the
// interface owns it afterwards.
type Method struct {
	inArgs  []Argument
	outArgs []Argument
	handler MethodHandler
	anns    []Annotation
}

func NewMethod(handler MethodHandler) *Method {
	return &Method{handler: handler}
}

// AddArgument declares one input argument.
func (m *Method) AddArgument(name, signature string) *Method {
	m.inArgs = append(m.inArgs, Argument{Name: name, Signature: signature})
	return m
}

// AddResult declares one output argument.
func (m *Method) AddResult(name, signature string) *Method {
	m.outArgs = append(m.outArgs, Argument{Name: name, Signature: signature})
	return m
}

func (m *Method) Annotate(name, value string) *Method {
	m.anns = append(m.anns, Annotation{Name: name, Value: value})
	return m
}

// PropertyAccess tags which capabilities a property carries.
type PropertyAccess uint8

const (
	ReadOnly PropertyAccess = iota
	ReadWrite
	WriteOnly
)

func (a PropertyAccess) String() string {
	switch a {
	case ReadWrite:
		return "readwrite"
	case WriteOnly:
		return "write"
	default:
		return "read"
	}
}

type (
	PropertyGetter func() (wire.Value, *CallError)
	PropertySetter func(wire.Value) *CallError
)

// Property declares a typed value slot on an interface. Which of getter
// and setter exist is determined by the access tag.
type Property struct {
	signature string
	access    PropertyAccess
	getter    PropertyGetter
	setter    PropertySetter
	anns      []Annotation
}

func NewReadOnlyProperty(signature string, get PropertyGetter) *Property {
	return &Property{signature: signature, access: ReadOnly, getter: get}
}

func NewReadWriteProperty(signature string, get PropertyGetter, set PropertySetter) *Property {
	return &Property{signature: signature, access: ReadWrite, getter: get, setter: set}
}

func NewWriteOnlyProperty(signature string, set PropertySetter) *Property {
	return &Property{signature: signature, access: WriteOnly, setter: set}
}

func (p *Property) Annotate(name, value string) *Property {
	p.anns = append(p.anns, Annotation{Name: name, Value: value})
	return p
}

func (p *Property) Access() PropertyAccess {
	return p.access
}

// Signal declares an emission shape. Emission itself goes through
// [Server.Emit]; nothing here fires on its own.
type Signal struct {
	args []Argument
	anns []Annotation
}

func NewSignal() *Signal {
	return &Signal{}
}

func (s *Signal) AddArgument(name, signature string) *Signal {
	s.args = append(s.args, Argument{Name: name, Signature: signature})
	return s
}

func (s *Signal) Annotate(name, value string) *Signal {
	s.anns = append(s.anns, Annotation{Name: name, Value: value})
	return s
}

// Interface is a named bundle of methods, properties and signals. It is
// accumulated during setup and must not be mutated once its owning
// registry is finalized.
type Interface struct {
	methods    map[string]*Method
	properties map[string]*Property
	signals    map[string]*Signal
}

func NewInterface() *Interface {
	return &Interface{
		methods:    make(map[string]*Method),
		properties: make(map[string]*Property),
		signals:    make(map[string]*Signal),
	}
}

func (it *Interface) AddMethod(name string, m *Method) *Interface {
	it.methods[name] = m
	return it
}

func (it *Interface) AddProperty(name string, p *Property) *Interface {
	it.properties[name] = p
	return it
}

func (it *Interface) AddSignal(name string, s *Signal) *Interface {
	it.signals[name] = s
	return it
}

func (it *Interface) Property(name string) (*Property, bool) {
	p, has := it.properties[name]
	return p, has
}

func (it *Interface) requireProperty(name string) (*Property, *CallError) {
	prop, has := it.properties[name]
	if !has {
		return nil, errUnknownProperty(name)
	}
	return prop, nil
}

// getPropertyValue reads one property, wrapping the value as a one-element
// result list.
func (it *Interface) getPropertyValue(name string) ([]wire.Value, *CallError) {
	prop, cerr := it.requireProperty(name)
	if cerr != nil {
		return nil, cerr
	}
	switch prop.access {
	case ReadOnly, ReadWrite:
		val, cerr := prop.getter()
		if cerr != nil {
			return nil, cerr
		}
		return []wire.Value{val}, nil
	default:
		return nil, NewCallError(NameFailed, "property is write-only: "+name)
	}
}

func (it *Interface) setPropertyValue(name string, value wire.Value) ([]wire.Value, *CallError) {
	prop, cerr := it.requireProperty(name)
	if cerr != nil {
		return nil, cerr
	}
	switch prop.access {
	case WriteOnly, ReadWrite:
		if cerr := prop.setter(value); cerr != nil {
			return nil, cerr
		}
		return nil, nil
	default:
		return nil, NewCallError(NameFailed, "property is read-only: "+name)
	}
}

// propertyMap reads every readable property and keeps only the successes.
// Individual read failures and write-only properties are silently omitted;
// GetAll never surfaces them.
func (it *Interface) propertyMap() map[string]wire.Value {
	props := make(map[string]wire.Value, len(it.properties))
	for _, name := range sortedKeys(it.properties) {
		prop := it.properties[name]
		if prop.access == WriteOnly {
			continue
		}
		val, cerr := prop.getter()
		if cerr != nil {
			continue
		}
		props[name] = val
	}
	return props
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
