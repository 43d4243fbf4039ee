package stream

import (
	"errors"
	"testing"
)

func TestDropFirst(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []int
	}{
		{"drop some", 8, []int{9, 10}},
		{"drop none", 0, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"negative is zero", -3, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"drop all", 10, []int{}},
		{"drop more than length", 20, []int{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mustCollect(t, DropFirst(Range(1, 10), tc.n))
			if !sliceEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDropWhile_GateOnce(t *testing.T) {
	calls := 0
	got := mustCollect(t, DropWhile(Range(1, 10), func(n int) bool {
		calls++
		return n%5 != 0
	}))
	if !sliceEqual(got, []int{5, 6, 7, 8, 9, 10}) {
		t.Errorf("got %v, want [5 6 7 8 9 10]", got)
	}
	if calls != 5 {
		t.Errorf("expected the predicate to stop being called after the gate opened, got %d calls", calls)
	}
}

func TestDropWhile_LaterMatchesStillForwarded(t *testing.T) {
	got := mustCollect(t, DropWhile(Of(1, 2, 5, 1, 2), func(n int) bool { return n < 3 }))
	if !sliceEqual(got, []int{5, 1, 2}) {
		t.Errorf("got %v, want [5 1 2]", got)
	}
}

func TestDropUntilOutputFrom(t *testing.T) {
	trigger := NewSubject[struct{}]()
	main := NewSubject[int]()
	r := Record(DropUntilOutputFrom(main, trigger))

	for i := 1; i <= 5; i++ {
		main.Send(i)
		if i == 3 {
			trigger.Send(struct{}{})
		}
	}
	main.Finish()

	if got := r.Values(); !sliceEqual(got, []int{4, 5}) {
		t.Errorf("got %v, want [4 5]", got)
	}
	if c, ok := r.Completion(); !ok || !c.IsFinished() {
		t.Errorf("expected Finished, got %v", c)
	}
	if trigger.SubscriberCount() != 0 {
		t.Error("expected the signal subscription to be released once the gate opened")
	}
}

func TestDropUntilOutputFrom_SignalFinishedWithoutOutput(t *testing.T) {
	trigger := NewSubject[int]()
	main := NewSubject[int]()
	r := Record(DropUntilOutputFrom(main, trigger))

	trigger.Finish()
	main.Send(1)
	main.Finish()

	if len(r.Values()) != 0 {
		t.Errorf("expected the gate to stay closed, got %v", r.Values())
	}
	if c, ok := r.Completion(); !ok || !c.IsFinished() {
		t.Errorf("expected Finished, got %v", c)
	}
}

func TestDropUntilOutputFrom_SignalFailure(t *testing.T) {
	boom := errors.New("signal broke")
	trigger := NewSubject[int]()
	main := NewSubject[int]()
	r := Record(DropUntilOutputFrom(main, trigger))

	trigger.Fail(boom)
	if c, _ := r.Completion(); c.Err() != boom {
		t.Errorf("expected signal failure to propagate, got %v", c)
	}
	if main.SubscriberCount() != 0 {
		t.Error("expected upstream to be cancelled")
	}
}

func TestDropUntilOutputFrom_SignalAlreadyEmitted(t *testing.T) {
	got := mustCollect(t, DropUntilOutputFrom(Of(1, 2), Just("go")))
	if !sliceEqual(got, []int{1, 2}) {
		t.Errorf("got %v, want [1 2]", got)
	}
}

func TestDropUntilOutputFrom_CancelReleasesSignal(t *testing.T) {
	trigger := NewSubject[int]()
	main := NewSubject[int]()
	r := Record(DropUntilOutputFrom(main, trigger))

	if trigger.SubscriberCount() != 1 || main.SubscriberCount() != 1 {
		t.Fatal("expected both subjects to be subscribed")
	}
	r.Cancel()
	if trigger.SubscriberCount() != 0 || main.SubscriberCount() != 0 {
		t.Error("expected cancel to release both subscriptions")
	}
}
