package events

import (
	"time"

	"github.com/borud/broker"
)

const publishTimeout = 1 * time.Second

// Publisher wraps a *broker.Broker so pkg/program can publish lifecycle
// events without ever checking for nil itself: a Publisher built over a
// nil broker (the common case — most Compile/Eval calls have no use for
// a trace) drops every Publish silently, mirroring how the teacher's
// cache.Starter and vcl.Loader treat a missing broker as "no observers".
type Publisher struct {
	broker *broker.Broker
}

// NewPublisher wraps b. A nil b is valid and yields a Publisher whose
// Publish calls are no-ops.
func NewPublisher(b *broker.Broker) *Publisher {
	return &Publisher{broker: b}
}

// Publish sends evt on Topic, ignoring the publish error the same way
// the teacher's starter/loader code does (`_ = broker.Publish(...)`):
// a slow or absent subscriber must never block or fail evaluation.
func (p *Publisher) Publish(evt any) {
	if p == nil || p.broker == nil {
		return
	}
	_ = p.broker.Publish(Topic, evt, publishTimeout)
}

// Subscribe returns a channel of every event published on Topic. It is
// the mechanism cmd/celeval's -v flag uses to print a compile/eval trace.
func Subscribe(b *broker.Broker) (<-chan any, error) {
	sub, err := b.Subscribe(Topic)
	if err != nil {
		return nil, err
	}
	out := make(chan any)
	go func() {
		defer close(out)
		for msg := range sub.Messages() {
			out <- msg.Payload
		}
	}()
	return out, nil
}
