package wire

import (
	"sync"
	"time"
)

// LocalConn is an in-process [Conn] backed by Go channels. Messages are
// passed by reference, never serialized. Both ends of a [Pipe] share the
// same close signal: closing either end closes the pipe.
type LocalConn struct {
	out chan *Message
	in  chan *Message

	serial uint32
	lk     sync.Mutex

	done *pipeDone
}

type pipeDone struct {
	once sync.Once
	ch   chan struct{}
}

func (d *pipeDone) close() {
	d.once.Do(func() { close(d.ch) })
}

// Pipe returns two connected LocalConn ends. What one end sends, the other
// receives from Next.
func Pipe(bufferSize uint) (*LocalConn, *LocalConn) {
	ab := make(chan *Message, bufferSize)
	ba := make(chan *Message, bufferSize)
	done := &pipeDone{ch: make(chan struct{})}

	a := &LocalConn{out: ab, in: ba, done: done}
	b := &LocalConn{out: ba, in: ab, done: done}
	return a, b
}

func (lc *LocalConn) Send(m *Message) error {
	lc.lk.Lock()
	if m.Serial == 0 {
		lc.serial++
		m.Serial = lc.serial
	}
	lc.lk.Unlock()

	select {
	case <-lc.done.ch:
		return ErrConnClosed
	case lc.out <- m:
		return nil
	}
}

func (lc *LocalConn) Next(timeout time.Duration) (*Message, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-lc.done.ch:
		return nil, ErrConnClosed
	case m := <-lc.in:
		return m, nil
	case <-timer.C:
		return nil, nil
	}
}

func (lc *LocalConn) Close() error {
	lc.done.close()
	return nil
}
