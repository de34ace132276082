package broker

import (
	"sync"

	"github.com/morpho-org/morpho-optimizers-sub014/events"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
)

// Subscriber receives the audit events it declared an interest in.
// Subscribers must not mutate shared state reachable by the core: events
// are outputs only.
type Subscriber interface {
	Push(evts ...events.Event)
	Types() []events.Type
}

// Broker fans audit events out to subscribers, synchronously. The core is
// single-threaded run-to-completion per operation, so delivery happens
// inline on the operation's goroutine; the lock only protects the
// subscriber table against concurrent Subscribe/Unsubscribe.
type Broker struct {
	log *logging.Logger

	mu    sync.Mutex
	seq   int
	subs  map[int]Subscriber
	tSubs map[events.Type]map[int]struct{}
}

// New creates a new broker.
func New(log *logging.Logger, config Config) *Broker {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Broker{
		log:   log,
		subs:  map[int]Subscriber{},
		tSubs: map[events.Type]map[int]struct{}{},
	}
}

// Subscribe registers a subscriber for the event types it reports,
// returning the key to unsubscribe with. Subscribing to events.All
// delivers everything.
func (b *Broker) Subscribe(s Subscriber) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	k := b.seq
	b.subs[k] = s
	for _, t := range s.Types() {
		if _, ok := b.tSubs[t]; !ok {
			b.tSubs[t] = map[int]struct{}{}
		}
		b.tSubs[t][k] = struct{}{}
	}
	return k
}

// Unsubscribe removes a subscriber by key, a no-op for unknown keys.
func (b *Broker) Unsubscribe(k int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.subs[k]
	if !ok {
		return
	}
	for _, t := range s.Types() {
		delete(b.tSubs[t], k)
	}
	delete(b.subs, k)
}

// Send delivers a single event to all interested subscribers.
func (b *Broker) Send(event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send(event)
}

// SendBatch delivers a batch of events in order.
func (b *Broker) SendBatch(evts []events.Event) {
	if len(evts) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range evts {
		b.send(e)
	}
}

func (b *Broker) send(event events.Event) {
	if b.log.IsDebug() {
		b.log.Debug("sending event",
			logging.String("type", event.Type().String()),
			logging.String("market-id", event.MarketID()),
			logging.String("trace-id", event.TraceID()),
		)
	}
	seen := map[int]struct{}{}
	for _, t := range []events.Type{event.Type(), events.All} {
		for k := range b.tSubs[t] {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			b.subs[k].Push(event)
		}
	}
}
