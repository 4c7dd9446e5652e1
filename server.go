package busobj

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/hashicorp/go-metrics"

	"github.com/ostraca/busobj/pkg/wire"
)

// Server is one logical bus server: a named set of objects, each object a
// [Registry] published at an object path. Several servers can share one
// connection through a [Runner], which offers every inbound item to each
// server in turn.
type Server struct {
	name string

	lk      sync.RWMutex
	objects map[string]*Registry

	logger *slog.Logger
	msink  metrics.MetricSink
	labels []metrics.Label
}

// NewServer builds a standalone server with default logging and metrics.
// Servers created through [Runner.AddServer] inherit the runner's
// configuration instead.
func NewServer(name string) *Server {
	return newServer(name, slog.Default(), metrics.Default(), nil)
}

func newServer(name string, logger *slog.Logger, msink metrics.MetricSink, labels []metrics.Label) *Server {
	return &Server{
		name:    name,
		objects: make(map[string]*Registry),
		logger:  logger,
		msink:   msink,
		labels:  labels,
	}
}

func (srv *Server) Name() string {
	return srv.name
}

// Object registers a fresh registry at an object path and returns it for
// interface registration. It fails with [ErrPathRegistered] when the path
// is taken.
func (srv *Server) Object(path string) (*Registry, error) {
	srv.lk.Lock()
	defer srv.lk.Unlock()
	if _, has := srv.objects[path]; has {
		return nil, fmt.Errorf("%w: %s", ErrPathRegistered, path)
	}
	reg := newRegistry(
		srv.logger.With(LabelServer.L(srv.name), LabelPath.L(path)),
		srv.msink,
		append([]metrics.Label{LabelServer.M(srv.name)}, srv.labels...),
	)
	srv.objects[path] = reg
	return reg, nil
}

// RemoveObject unpublishes an object path.
func (srv *Server) RemoveObject(path string) error {
	srv.lk.Lock()
	defer srv.lk.Unlock()
	if _, has := srv.objects[path]; !has {
		return fmt.Errorf("%w: %s", ErrNoSuchPath, path)
	}
	delete(srv.objects, path)
	return nil
}

// ObjectPaths returns the registered object paths in sorted order.
func (srv *Server) ObjectPaths() []string {
	srv.lk.RLock()
	defer srv.lk.RUnlock()
	return sortedKeys(srv.objects)
}

// FinalizeObject finalizes the registry published at path, deriving its
// child node names from the other object paths registered directly
// below it.
func (srv *Server) FinalizeObject(path string) error {
	srv.lk.RLock()
	reg, has := srv.objects[path]
	var children []string
	if has {
		children = srv.childrenOfLocked(path)
	}
	srv.lk.RUnlock()

	if !has {
		return fmt.Errorf("%w: %s", ErrNoSuchPath, path)
	}
	return reg.Finalize(children)
}

func (srv *Server) childrenOfLocked(path string) []string {
	prefix := path
	if prefix != "/" {
		prefix += "/"
	}
	seen := make(map[string]struct{})
	var children []string
	for _, p := range sortedKeys(srv.objects) {
		if p == path || !strings.HasPrefix(p, prefix) {
			continue
		}
		name, _, _ := strings.Cut(p[len(prefix):], "/")
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		children = append(children, name)
	}
	return children
}

// Handle offers one inbound message to this server. The object path header
// selects the registry; an unknown path or a non-call means "not mine" and
// the item is left to the next server.
func (srv *Server) Handle(conn wire.Conn, msg *wire.Message) (bool, error) {
	_, path, _, ok := msg.CallTarget()
	if !ok {
		return false, nil
	}

	srv.lk.RLock()
	reg, has := srv.objects[path]
	srv.lk.RUnlock()
	if !has {
		return false, nil
	}

	return reg.Handle(conn, msg)
}

// Emit builds a signal message originating at the given object path and
// sends it on conn. The signal's shape is declared on the interface; this
// only performs the emission.
func (srv *Server) Emit(conn wire.Conn, path, iface, member string, values ...wire.Value) error {
	msg := wire.NewSignal(path, iface, member)
	for _, v := range values {
		msg.AddArgument(v)
	}
	if err := conn.Send(msg); err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}
	return nil
}
