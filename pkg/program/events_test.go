package program_test

import (
	"testing"
	"time"

	"github.com/borud/broker"

	"github.com/perbu/celeval/pkg/events"
	"github.com/perbu/celeval/pkg/program"
)

func TestEventsPublishedOnCompileAndEvaluate(t *testing.T) {
	b := broker.New(broker.Config{})
	pub := events.NewPublisher(b)

	received := make(chan any, 8)
	ch, err := events.Subscribe(b)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	go func() {
		for evt := range ch {
			received <- evt
		}
	}()

	p, err := program.Compile("1 + 1", program.WithEvents(pub))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := p.Evaluate(program.Env{}); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	var gotCompileStarted, gotCompileFinished, gotEvalStarted, gotEvalFinished bool
	timeout := time.After(time.Second)
	for i := 0; i < 4; i++ {
		select {
		case evt := <-received:
			switch evt.(type) {
			case events.CompileStarted:
				gotCompileStarted = true
			case events.CompileFinished:
				gotCompileFinished = true
			case events.EvalStarted:
				gotEvalStarted = true
			case events.EvalFinished:
				gotEvalFinished = true
			}
		case <-timeout:
			t.Fatal("timed out waiting for lifecycle events")
		}
	}
	if !gotCompileStarted || !gotCompileFinished || !gotEvalStarted || !gotEvalFinished {
		t.Errorf("missing events: started=%v finished=%v evalStarted=%v evalFinished=%v",
			gotCompileStarted, gotCompileFinished, gotEvalStarted, gotEvalFinished)
	}
}

func TestCompileWithoutEventsOptionPublishesNothing(t *testing.T) {
	// No WithEvents option: Compile/Evaluate must work identically, just silently.
	p, err := program.Compile("2 * 2")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	v, err := p.Evaluate(program.Env{})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	got, _ := v.AsInt()
	if got != 4 {
		t.Errorf("got %v, want 4", got)
	}
}
