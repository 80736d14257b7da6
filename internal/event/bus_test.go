package event

import (
	"context"
	"testing"
	"time"
)

func TestDispatchRoutesByKind(t *testing.T) {
	bus := NewBus(4)

	var got []Kind
	bus.Subscribe(func(e Event) { got = append(got, e.Kind()) }, KindBattery, KindUSBConn)

	bus.Dispatch(BatteryStateChanged{StateOfCharge: 40})
	bus.Dispatch(LayerStateChanged{Layer: 1, Active: true})
	bus.Dispatch(USBConnStateChanged{Powered: true})

	want := []Kind{KindBattery, KindUSBConn}
	if len(got) != len(want) {
		t.Fatalf("handler saw %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("handler saw %v, want %v", got, want)
		}
	}
}

func TestDispatchOrder(t *testing.T) {
	bus := NewBus(1)

	var order []int
	bus.Subscribe(func(Event) { order = append(order, 1) }, KindWPM)
	bus.Subscribe(func(Event) { order = append(order, 2) }, KindWPM)
	bus.Dispatch(WPMStateChanged{State: 30})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("handlers ran in order %v, want [1 2]", order)
	}
}

func TestDispatchRecoversPanics(t *testing.T) {
	bus := NewBus(1)

	ran := false
	bus.Subscribe(func(Event) { panic("boom") }, KindEndpoint)
	bus.Subscribe(func(Event) { ran = true }, KindEndpoint)

	bus.Dispatch(EndpointChanged{})
	if !ran {
		t.Fatal("handler after a panicking handler did not run")
	}
}

func TestPostDropsWhenFull(t *testing.T) {
	bus := NewBus(2)

	if !bus.Post(WPMStateChanged{State: 1}) || !bus.Post(WPMStateChanged{State: 2}) {
		t.Fatal("Post() = false before the queue was full")
	}
	if bus.Post(WPMStateChanged{State: 3}) {
		t.Fatal("Post() = true on a full queue")
	}
	if got := bus.Pending(); got != 2 {
		t.Fatalf("Pending() = %d, want 2", got)
	}
}

func TestRunDeliversAndCallsAfter(t *testing.T) {
	bus := NewBus(8)

	var samples []uint8
	bus.Subscribe(func(e Event) {
		samples = append(samples, e.(WPMStateChanged).State)
	}, KindWPM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	after := 0
	go func() {
		defer close(done)
		bus.Run(ctx, func(Event) {
			after++
			if after == 3 {
				cancel()
			}
		})
	}()

	for _, v := range []uint8{10, 20, 30} {
		bus.Post(WPMStateChanged{State: v})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	if len(samples) != 3 || samples[0] != 10 || samples[2] != 30 {
		t.Fatalf("delivered %v, want [10 20 30]", samples)
	}
}

func TestKindNames(t *testing.T) {
	for k := KindBattery; k <= KindWPM; k++ {
		if got := ParseKind(k.String()); got != k {
			t.Fatalf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if got := ParseKind("nope"); got != 0 {
		t.Fatalf("ParseKind(nope) = %v, want 0", got)
	}
}
