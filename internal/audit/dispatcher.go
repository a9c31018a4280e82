package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const queueSize = 100

// Dispatcher writes audit events in the background. A full queue drops the
// event; auditing never fails a request.
type Dispatcher struct {
	store Store
	queue chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(store Store) *Dispatcher {
	d := &Dispatcher{
		store: store,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		entry := ev.entry()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := d.store.Write(ctx, &entry)
		cancel()

		if err != nil {
			log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch is a no-op on a nil Dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits until the queue is drained.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() { close(d.queue) })
	<-d.done
}
