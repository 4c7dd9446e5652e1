package busobj

import (
	"github.com/ostraca/busobj/pkg/wire"
)

// The three standard interfaces every finalized registry exposes. The
// property and introspection interfaces capture the registry they are
// injected into so they answer from its live contents.

func newPeerInterface() *Interface {
	return NewInterface().
		AddMethod("Ping", NewMethod(func(*Call) ([]wire.Value, *CallError) {
			return nil, nil
		})).
		AddMethod("GetMachineId", NewMethod(func(*Call) ([]wire.Value, *CallError) {
			return []wire.Value{wire.String(MachineID())}, nil
		}).AddResult("machine_uuid", "s"))
}

func newPropertiesInterface(reg *Registry) *Interface {
	return NewInterface().
		AddMethod("Get", NewMethod(func(c *Call) ([]wire.Value, *CallError) {
			ifaceName, cerr := c.StringArg(0)
			if cerr != nil {
				return nil, cerr
			}
			propName, cerr := c.StringArg(1)
			if cerr != nil {
				return nil, cerr
			}
			iface, cerr := reg.requireInterface(ifaceName)
			if cerr != nil {
				return nil, cerr
			}
			return iface.getPropertyValue(propName)
		}).
			AddArgument("interface_name", "s").
			AddArgument("property_name", "s").
			AddResult("value", "v")).
		AddMethod("Set", NewMethod(func(c *Call) ([]wire.Value, *CallError) {
			ifaceName, cerr := c.StringArg(0)
			if cerr != nil {
				return nil, cerr
			}
			propName, cerr := c.StringArg(1)
			if cerr != nil {
				return nil, cerr
			}
			value, cerr := c.Arg(2)
			if cerr != nil {
				return nil, cerr
			}
			iface, cerr := reg.requireInterface(ifaceName)
			if cerr != nil {
				return nil, cerr
			}
			return iface.setPropertyValue(propName, value)
		}).
			AddArgument("interface_name", "s").
			AddArgument("property_name", "s").
			AddResult("value", "v")).
		AddMethod("GetAll", NewMethod(func(c *Call) ([]wire.Value, *CallError) {
			ifaceName, cerr := c.StringArg(0)
			if cerr != nil {
				return nil, cerr
			}
			iface, cerr := reg.requireInterface(ifaceName)
			if cerr != nil {
				return nil, cerr
			}
			return []wire.Value{wire.Dict(iface.propertyMap())}, nil
		}).
			AddArgument("interface_name", "s").
			AddResult("props", "{sv}"))
}

func newIntrospectableInterface(reg *Registry, children []string) *Interface {
	return NewInterface().
		AddMethod("Introspect", NewMethod(func(*Call) ([]wire.Value, *CallError) {
			return []wire.Value{wire.String(reg.introspect(children))}, nil
		}).AddResult("xml_data", "s"))
}
