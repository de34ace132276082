package execution

import (
	"github.com/morpho-org/morpho-optimizers-sub014/events"
)

// evtBuffer collects the audit events of one operation so they only
// reach the real broker if the operation commits. An aborted operation
// leaves no audit trail, matching the all-or-nothing semantics of the
// core.
type evtBuffer struct {
	out Broker
	buf []events.Event
}

func newEvtBuffer(out Broker) *evtBuffer {
	return &evtBuffer{out: out}
}

func (b *evtBuffer) Send(event events.Event) {
	b.buf = append(b.buf, event)
}

func (b *evtBuffer) SendBatch(evts []events.Event) {
	b.buf = append(b.buf, evts...)
}

// flush commits the buffered events downstream, in emission order.
func (b *evtBuffer) flush() {
	if len(b.buf) == 0 {
		return
	}
	b.out.SendBatch(b.buf)
	b.buf = nil
}

// discard drops the buffered events of an aborted operation.
func (b *evtBuffer) discard() {
	b.buf = nil
}
