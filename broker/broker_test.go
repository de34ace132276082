package broker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morpho-org/morpho-optimizers-sub014/broker"
	"github.com/morpho-org/morpho-optimizers-sub014/events"
	"github.com/morpho-org/morpho-optimizers-sub014/logging"
	"github.com/morpho-org/morpho-optimizers-sub014/types"
	"github.com/morpho-org/morpho-optimizers-sub014/types/num"
)

type sub struct {
	types []events.Type
	got   []events.Event
}

func (s *sub) Push(evts ...events.Event) {
	s.got = append(s.got, evts...)
}

func (s *sub) Types() []events.Type {
	return s.types
}

func getTestBroker() *broker.Broker {
	return broker.New(logging.NewTestLogger(), broker.NewDefaultConfig())
}

func positionEvt() events.Event {
	return events.NewPositionUpdated(context.Background(), "DAI", "alice",
		types.SideSupply, num.NewUint(1), num.UintZero())
}

func deltaEvt() events.Event {
	return events.NewDeltaUpdated(context.Background(), "DAI",
		types.SideBorrow, num.NewUint(5))
}

func TestSubscribeByType(t *testing.T) {
	brk := getTestBroker()
	s := &sub{types: []events.Type{events.PositionUpdatedEvent}}
	brk.Subscribe(s)

	brk.Send(positionEvt())
	brk.Send(deltaEvt())

	require.Len(t, s.got, 1)
	assert.Equal(t, events.PositionUpdatedEvent, s.got[0].Type())
}

func TestSubscribeAll(t *testing.T) {
	brk := getTestBroker()
	s := &sub{types: []events.Type{events.All}}
	brk.Subscribe(s)

	brk.Send(positionEvt())
	brk.Send(deltaEvt())
	assert.Len(t, s.got, 2)
}

func TestSendBatchKeepsOrder(t *testing.T) {
	brk := getTestBroker()
	s := &sub{types: []events.Type{events.All}}
	brk.Subscribe(s)

	brk.SendBatch([]events.Event{deltaEvt(), positionEvt()})
	require.Len(t, s.got, 2)
	assert.Equal(t, events.DeltaUpdatedEvent, s.got[0].Type())
	assert.Equal(t, events.PositionUpdatedEvent, s.got[1].Type())
}

func TestUnsubscribe(t *testing.T) {
	brk := getTestBroker()
	s := &sub{types: []events.Type{events.All}}
	k := brk.Subscribe(s)

	brk.Send(positionEvt())
	brk.Unsubscribe(k)
	brk.Send(positionEvt())
	assert.Len(t, s.got, 1)

	// unknown keys are a no-op
	brk.Unsubscribe(42)
}

func TestNoDoubleDelivery(t *testing.T) {
	// subscribing to a concrete type and All must not deliver twice
	brk := getTestBroker()
	s := &sub{types: []events.Type{events.PositionUpdatedEvent, events.All}}
	brk.Subscribe(s)

	brk.Send(positionEvt())
	assert.Len(t, s.got, 1)
}
