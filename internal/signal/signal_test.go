package signal

import "testing"

func TestValue_SetNotifiesSubscribersInOrder(t *testing.T) {
	v := New(0)
	var got []string

	v.Subscribe(func(n int) { got = append(got, "a") })
	v.Subscribe(func(n int) { got = append(got, "b") })

	v.Set(3)
	if v.Get() != 3 {
		t.Fatalf("expected Get()=3, got %d", v.Get())
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected notification order: %v", got)
	}
}

func TestValue_UnsubscribeStopsNotifications(t *testing.T) {
	v := New("x")
	calls := 0
	unsub := v.Subscribe(func(string) { calls++ })

	v.Set("y")
	unsub()
	v.Set("z")

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	// Unsubscribing twice is harmless.
	unsub()
}

func TestValue_SubscriberMaySetWithoutDeadlock(t *testing.T) {
	v := New(0)
	other := New(0)
	v.Subscribe(func(n int) { other.Set(n * 2) })

	v.Set(21)
	if other.Get() != 42 {
		t.Fatalf("expected 42, got %d", other.Get())
	}
}
