package busobj

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-metrics"

	"github.com/ostraca/busobj/pkg/wire"
)

// Names of the standard interfaces injected at finalization.
const (
	IfacePeer           = "org.freedesktop.DBus.Peer"
	IfaceProperties     = "org.freedesktop.DBus.Properties"
	IfaceIntrospectable = "org.freedesktop.DBus.Introspectable"
)

// Registry maps interface names to interfaces and dispatches inbound calls
// to their handlers. It accumulates interfaces during setup, is finalized
// exactly once, and is read-mostly afterwards: handlers may still mutate
// property values, the shape is frozen.
//
// The standard interfaces injected at finalization hold a back-reference
// into the registry so they can answer questions about the other
// interfaces registered in it.
type Registry struct {
	lk        sync.RWMutex
	ifaces    map[string]*Interface
	finalized bool

	logger *slog.Logger
	msink  metrics.MetricSink
	labels []metrics.Label
}

// NewRegistry builds an empty registry with default logging and metrics.
// Registries created through [Server.Object] inherit the runner's
// configuration instead.
func NewRegistry() *Registry {
	return newRegistry(slog.Default(), metrics.Default(), nil)
}

func newRegistry(logger *slog.Logger, msink metrics.MetricSink, labels []metrics.Label) *Registry {
	return &Registry{
		ifaces: make(map[string]*Interface),
		logger: logger,
		msink:  msink,
		labels: labels,
	}
}

// AddInterface registers an interface under a unique name. It fails with
// [ErrRegistryFinalized] once the registry has been finalized and
// [ErrInterfaceRegistered] when the name is taken.
func (reg *Registry) AddInterface(name string, iface *Interface) error {
	reg.lk.Lock()
	defer reg.lk.Unlock()
	return reg.addInterfaceLocked(name, iface)
}

func (reg *Registry) addInterfaceLocked(name string, iface *Interface) error {
	if reg.finalized {
		return fmt.Errorf("%w: %s", ErrRegistryFinalized, name)
	}
	if _, has := reg.ifaces[name]; has {
		return fmt.Errorf("%w: %s", ErrInterfaceRegistered, name)
	}
	reg.ifaces[name] = iface
	return nil
}

// Finalize injects the peer, property-access and introspection interfaces,
// then freezes the registry's shape. It must be called exactly once; the
// children are the object names rendered as sub-nodes in introspection
// output.
//
// Injection is atomic: all three standard names are checked before any is
// inserted, so a collision leaves the registry untouched and unfinalized.
func (reg *Registry) Finalize(children []string) error {
	reg.lk.Lock()
	defer reg.lk.Unlock()

	if reg.finalized {
		return fmt.Errorf("%w: finalize called twice", ErrRegistryFinalized)
	}

	std := []struct {
		name  string
		iface *Interface
	}{
		{IfacePeer, newPeerInterface()},
		{IfaceProperties, newPropertiesInterface(reg)},
		{IfaceIntrospectable, newIntrospectableInterface(reg, children)},
	}

	for _, s := range std {
		if _, has := reg.ifaces[s.name]; has {
			return fmt.Errorf("%w: %s", ErrInterfaceRegistered, s.name)
		}
	}
	for _, s := range std {
		reg.ifaces[s.name] = s.iface
	}

	reg.finalized = true
	return nil
}

// Finalized reports whether the registry's shape is frozen.
func (reg *Registry) Finalized() bool {
	reg.lk.RLock()
	defer reg.lk.RUnlock()
	return reg.finalized
}

// InterfaceNames returns the registered interface names in sorted order.
func (reg *Registry) InterfaceNames() []string {
	reg.lk.RLock()
	defer reg.lk.RUnlock()
	return sortedKeys(reg.ifaces)
}

func (reg *Registry) requireInterface(name string) (*Interface, *CallError) {
	reg.lk.RLock()
	defer reg.lk.RUnlock()
	iface, has := reg.ifaces[name]
	if !has {
		return nil, errUnknownInterface(name)
	}
	return iface, nil
}

// Handle routes one inbound message. It returns (false, nil) when the
// message carries no call target or the target is not registered here:
// "not mine" is not an error, the caller offers the item to the next
// candidate. When the target resolves, exactly one handler runs
// synchronously and the reply (return or error) is sent on conn.
//
// A transport failure while sending the reply is reported wrapped in
// [ErrSend]; the call itself was already processed.
func (reg *Registry) Handle(conn wire.Conn, msg *wire.Message) (bool, error) {
	ifaceName, _, member, ok := msg.CallTarget()
	if !ok {
		return false, nil
	}

	reg.lk.RLock()
	var method *Method
	if iface, has := reg.ifaces[ifaceName]; has {
		method = iface.methods[member]
	}
	reg.lk.RUnlock()
	if method == nil {
		return false, nil
	}

	labels := append([]metrics.Label{
		LabelInterface.M(ifaceName),
		LabelMethod.M(member),
	}, reg.labels...)
	reg.msink.IncrCounterWithLabels(MetricDispatchCallCount, 1.0, labels)

	var reply *wire.Message
	vals, cerr := method.handler(&Call{Msg: msg})
	if cerr != nil {
		reg.msink.IncrCounterWithLabels(MetricDispatchErrorCount, 1.0, labels)
		reg.logger.Debug(
			"handler produced an error reply",
			LabelInterface.L(ifaceName),
			LabelMethod.L(member),
			LabelErrorName.L(cerr.Name),
		)
		reply = msg.Error(cerr.Name).AddArgument(wire.String(cerr.Message))
	} else {
		reply = msg.Return()
		for _, val := range vals {
			reply.AddArgument(val)
		}
	}

	if err := conn.Send(reply); err != nil {
		reg.msink.IncrCounterWithLabels(MetricDispatchSendErrorCount, 1.0, labels)
		return true, fmt.Errorf("%w: %w", ErrSend, err)
	}
	return true, nil
}
