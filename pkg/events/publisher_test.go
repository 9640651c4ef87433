package events

import "testing"

func TestNilPublisherIsNoOp(t *testing.T) {
	var p *Publisher
	p.Publish(CompileStarted{Source: "1 + 1"})
}

func TestPublisherWithNilBrokerIsNoOp(t *testing.T) {
	p := NewPublisher(nil)
	p.Publish(EvalFinished{Source: "1 + 1"})
}
