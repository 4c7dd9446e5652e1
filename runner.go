package busobj

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/go-metrics"

	"github.com/ostraca/busobj/pkg/wire"
)

// Runner multiplexes several independently registered servers over one
// connection. Inbound items are offered to each server in name order until
// one claims it; unclaimed items are dropped silently, sending an
// "unknown method" reply is each dispatch engine's own business.
//
// Dispatch is single-threaded and run-to-completion: one inbound item is
// fully processed before the next fetch. Registration must complete and
// registries must be finalized before Run starts; the runner does not
// arbitrate that ordering.
type Runner struct {
	config config
	logger *slog.Logger
	conn   wire.Conn

	lk      sync.Mutex
	servers map[string]*Server

	shutdown   bool
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// Create builds a Runner over an established connection.
func Create(conn wire.Conn, opts ...Option) (*Runner, error) {
	run := &Runner{
		conn:       conn,
		servers:    make(map[string]*Server),
		shutdownCh: make(chan struct{}),
	}
	run.config.pollTimeout = time.Second

	for _, opt := range opts {
		if err := opt(&run.config); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCfg, err)
		}
	}

	if run.config.logHandler != nil {
		run.logger = slog.New(run.config.logHandler)
	} else {
		run.logger = slog.Default()
	}

	if run.config.msink == nil {
		run.config.msink = metrics.Default()
	}

	return run, nil
}

// AddServer registers a new named server and returns it so objects and
// interfaces can be published on it.
func (run *Runner) AddServer(name string) (*Server, error) {
	run.lk.Lock()
	defer run.lk.Unlock()
	if run.shutdown {
		return nil, ErrRunnerClosed
	}
	if _, has := run.servers[name]; has {
		return nil, fmt.Errorf("%w: %s", ErrServerRegistered, name)
	}
	srv := newServer(name, run.logger, run.config.msink, run.config.metricLabels)
	run.servers[name] = srv
	return srv, nil
}

// RemoveServer unregisters a server; subsequent inbound items it would
// have claimed go unclaimed.
func (run *Runner) RemoveServer(name string) error {
	run.lk.Lock()
	defer run.lk.Unlock()
	if _, has := run.servers[name]; !has {
		return fmt.Errorf("%w: %s", ErrNoSuchServer, name)
	}
	delete(run.servers, name)
	return nil
}

// Run pulls inbound items from the connection and dispatches them until
// the context is cancelled, Shutdown is called, or the connection closes.
func (run *Runner) Run(ctx context.Context) error {
	run.wg.Add(1)
	defer run.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-run.shutdownCh:
			return nil
		default:
		}

		msg, err := run.conn.Next(run.config.pollTimeout)
		if err != nil {
			if errors.Is(err, wire.ErrConnClosed) {
				run.logger.Info("connection closed, run loop stopping")
				return nil
			}
			return err
		}
		if msg == nil {
			continue
		}

		run.dispatch(msg)
	}
}

func (run *Runner) dispatch(msg *wire.Message) {
	if msg.Type != wire.MsgCall && msg.Type != wire.MsgSignal {
		run.config.msink.IncrCounterWithLabels(MetricRunnerDiscardCount, 1.0, run.config.metricLabels)
		return
	}

	run.lk.Lock()
	servers := make([]*Server, 0, len(run.servers))
	for _, name := range sortedKeys(run.servers) {
		servers = append(servers, run.servers[name])
	}
	run.lk.Unlock()

	for _, srv := range servers {
		handled, err := srv.Handle(run.conn, msg)
		if handled {
			if err != nil {
				run.logger.Error(
					"dispatch failed",
					LabelServer.L(srv.Name()),
					LabelError.L(err),
				)
			}
			return
		}
	}

	run.config.msink.IncrCounterWithLabels(MetricRunnerUnclaimedCount, 1.0, run.config.metricLabels)
	run.logger.Debug(
		"no server claimed inbound item",
		LabelInterface.L(msg.Iface),
		LabelMethod.L(msg.Member),
		LabelPath.L(msg.Path),
	)
}

// Shutdown stops the run loop and waits for the in-flight item, if any, to
// finish. It is idempotent.
func (run *Runner) Shutdown() error {
	run.lk.Lock()
	if run.shutdown {
		run.lk.Unlock()
		return nil
	}
	run.shutdown = true
	close(run.shutdownCh)
	run.lk.Unlock()

	run.wg.Wait()
	run.logger.Info("shutdown: completed")
	return nil
}
