package event

import (
	"testing"

	"trezorhid.dev/core/adapter"
)

// TestPublishOrdering verifies subscribers are invoked in registration
// order, once per Publish call (spec.md §4.7).
func TestPublishOrdering(t *testing.T) {
	b := New()
	var order []int
	b.Subscribe(func(ev Event, _ Context) { order = append(order, 1) })
	b.Subscribe(func(ev Event, _ Context) { order = append(order, 2) })
	b.Subscribe(func(ev Event, _ Context) { order = append(order, 3) })

	b.PublishDeviceReady(&adapter.Features{DeviceID: "dead"})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("subscriber order = %v, want [1 2 3]", order)
	}
}

// TestPublishBeforeReadBarrier verifies Context mutation happens before
// subscribers are invoked, so a subscriber observing DeviceReady always
// sees Context.Features already set (spec.md §5's publish-before-read
// barrier).
func TestPublishBeforeReadBarrier(t *testing.T) {
	b := New()
	var sawFeatures *adapter.Features
	var sawWalletPresent bool
	b.Subscribe(func(ev Event, ctx Context) {
		if ev.Kind == DeviceReady {
			sawFeatures = ctx.Features
			sawWalletPresent = ctx.WalletPresent
		}
	})

	feat := &adapter.Features{DeviceID: "dead"}
	b.PublishDeviceReady(feat)

	if sawFeatures != feat {
		t.Fatalf("subscriber saw Context.Features = %v, want %v", sawFeatures, feat)
	}
	if !sawWalletPresent {
		t.Fatal("subscriber saw Context.WalletPresent = false, want true")
	}
}

// TestContextSnapshotIsolation verifies a snapshot taken by one Publish call
// is not mutated by a later one (Bus.Context()/ctx.snapshot() must copy,
// not alias, the live Context).
func TestContextSnapshotIsolation(t *testing.T) {
	b := New()
	b.PublishAddress(&adapter.Address{Address: "1first"})
	first := b.Context()

	b.PublishAddress(&adapter.Address{Address: "1second"})
	second := b.Context()

	if first.LastAddress.Address != "1first" {
		t.Fatalf("first snapshot mutated: got %q, want 1first", first.LastAddress.Address)
	}
	if second.LastAddress.Address != "1second" {
		t.Fatalf("second snapshot = %q, want 1second", second.LastAddress.Address)
	}
}

// TestDeviceDetachedClearsWalletPresent verifies PublishDeviceDetached both
// clears Context.WalletPresent and fires DeviceDetached subscribers.
func TestDeviceDetachedClearsWalletPresent(t *testing.T) {
	b := New()
	b.PublishDeviceReady(&adapter.Features{DeviceID: "dead"})

	var sawDetached bool
	b.Subscribe(func(ev Event, _ Context) {
		if ev.Kind == DeviceDetached {
			sawDetached = true
		}
	})
	b.PublishDeviceDetached()

	if !sawDetached {
		t.Fatal("expected DeviceDetached event")
	}
	if b.Context().WalletPresent {
		t.Fatal("expected WalletPresent = false after DeviceDetached")
	}
}

func TestTypeStringUnknown(t *testing.T) {
	var unknown Type = 999
	if unknown.String() != "UNKNOWN_EVENT" {
		t.Fatalf("String() = %q, want UNKNOWN_EVENT", unknown.String())
	}
}
