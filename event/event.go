// Package event implements the Event Bus & shared Session Context (C7):
// synchronous publish/subscribe dispatch with a single-writer mutable
// Context record, following the same dispatch-then-callback shape the
// teacher's node/p2p.Peer uses for its handler callback (spec.md §4.7).
package event

import (
	"sync"

	"trezorhid.dev/core/adapter"
)

// Type is the public event-type set from spec.md §4.4.
type Type int

const (
	DeviceReady Type = iota
	DeviceDetached
	DeviceFailed
	ShowPinEntry
	ShowPassphraseEntry
	ShowButtonPress
	DeterministicHierarchy
	AddressEvent
	PublicKeyEvent
	OperationSucceeded
	OperationFailed
)

var typeNames = map[Type]string{
	DeviceReady:             "DEVICE_READY",
	DeviceDetached:          "DEVICE_DETACHED",
	DeviceFailed:            "DEVICE_FAILED",
	ShowPinEntry:            "SHOW_PIN_ENTRY",
	ShowPassphraseEntry:     "SHOW_PASSPHRASE_ENTRY",
	ShowButtonPress:         "SHOW_BUTTON_PRESS",
	DeterministicHierarchy:  "DETERMINISTIC_HIERARCHY",
	AddressEvent:            "ADDRESS",
	PublicKeyEvent:          "PUBLIC_KEY",
	OperationSucceeded:      "OPERATION_SUCCEEDED",
	OperationFailed:         "OPERATION_FAILED",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "UNKNOWN_EVENT"
}

// Event is the sum-type payload delivered to subscribers. Payload holds
// whichever adapter projection is relevant to Kind; nil for lifecycle-only
// events such as DeviceDetached (DeviceReady carries Features both in
// Payload and on Context).
type Event struct {
	Kind    Type
	Payload any
}

// HierarchyKey identifies a cached deterministic hierarchy by account
// path, formatted as the dot-joined AddressN (e.g. "2147483692.2147483648.2147483648").
type HierarchyKey string

// DeterministicKey is the cached (path, chaincode, pubkey) triple C4
// reconstructs from a PublicKey response (spec.md §4.4).
type DeterministicKey struct {
	Path      []uint32
	ChainCode []byte
	PublicKey []byte
	Xpub      string
}

// Context is the shared mutable record subscribers read and only the
// transport thread writes (spec.md §4.7, §5). Fields are updated by C4
// before the corresponding event is published.
type Context struct {
	mu sync.Mutex

	Features         *adapter.Features
	DeterministicKey *DeterministicKey
	LastAddress      *adapter.Address
	LastPublicKey    *adapter.PublicKey
	LastFailure      *adapter.Failure
	WalletPresent    bool
}

// snapshot returns a shallow copy safe for a subscriber to read without
// racing the next write.
func (c *Context) snapshot() Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Context{
		Features:         c.Features,
		DeterministicKey: c.DeterministicKey,
		LastAddress:      c.LastAddress,
		LastPublicKey:    c.LastPublicKey,
		LastFailure:      c.LastFailure,
		WalletPresent:    c.WalletPresent,
	}
}

func (c *Context) setFeatures(f *adapter.Features) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Features = f
	c.WalletPresent = true
}

func (c *Context) setDeterministicKey(k *DeterministicKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DeterministicKey = k
}

func (c *Context) setAddress(a *adapter.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastAddress = a
}

func (c *Context) setPublicKey(p *adapter.PublicKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastPublicKey = p
}

func (c *Context) setFailure(f *adapter.Failure) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastFailure = f
}

func (c *Context) clearWallet() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WalletPresent = false
}

// Subscriber receives events synchronously on the dispatch path. It MUST
// NOT perform blocking work; long-running work belongs on Bus.Executor.
type Subscriber func(Event, Context)

// Bus is the synchronous pub/sub dispatcher plus the Context it guards.
// Publish is called only from the transport thread (spec.md §5); the
// Bus mutex only protects the subscriber slice against a concurrent
// Subscribe, and Context guards its own field writes with its own mutex.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	ctx         Context

	Executor *Executor
}

// New builds a Bus with an idle single-threaded callback Executor.
func New() *Bus {
	return &Bus{Executor: NewExecutor()}
}

// Subscribe registers a callback invoked synchronously for every
// subsequent Publish call.
func (b *Bus) Subscribe(s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, s)
}

// Context returns a point-in-time snapshot of the shared Session Context.
func (b *Bus) Context() Context {
	return b.ctx.snapshot()
}

// publish delivers ev to every subscriber in registration order. Context
// mutation must have already happened (the publish-before-read barrier,
// spec.md §5), so subscribers observe state consistent with ev.
func (b *Bus) publish(ev Event) {
	b.mu.RLock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	snap := b.ctx.snapshot()
	for _, s := range subs {
		s(ev, snap)
	}
}

// PublishDeviceReady updates Context.Features then publishes DeviceReady.
func (b *Bus) PublishDeviceReady(f *adapter.Features) {
	b.ctx.setFeatures(f)
	b.publish(Event{Kind: DeviceReady, Payload: f})
}

// PublishDeviceDetached marks the wallet absent and publishes DeviceDetached.
func (b *Bus) PublishDeviceDetached() {
	b.ctx.clearWallet()
	b.publish(Event{Kind: DeviceDetached})
}

// PublishDeviceFailed publishes DeviceFailed without mutating Context.
func (b *Bus) PublishDeviceFailed(detail string) {
	b.publish(Event{Kind: DeviceFailed, Payload: detail})
}

// PublishShowPinEntry publishes ShowPinEntry with the PinMatrixRequest kind.
func (b *Bus) PublishShowPinEntry(req *adapter.PinMatrixRequest) {
	b.publish(Event{Kind: ShowPinEntry, Payload: req})
}

// PublishShowPassphraseEntry publishes ShowPassphraseEntry.
func (b *Bus) PublishShowPassphraseEntry() {
	b.publish(Event{Kind: ShowPassphraseEntry})
}

// PublishShowButtonPress publishes ShowButtonPress with the request detail.
func (b *Bus) PublishShowButtonPress(req *adapter.ButtonRequest) {
	b.publish(Event{Kind: ShowButtonPress, Payload: req})
}

// PublishDeterministicHierarchy caches k on Context then publishes the event.
func (b *Bus) PublishDeterministicHierarchy(k *DeterministicKey) {
	b.ctx.setDeterministicKey(k)
	b.publish(Event{Kind: DeterministicHierarchy, Payload: k})
}

// PublishAddress caches a on Context then publishes the event.
func (b *Bus) PublishAddress(a *adapter.Address) {
	b.ctx.setAddress(a)
	b.publish(Event{Kind: AddressEvent, Payload: a})
}

// PublishPublicKey caches k on Context then publishes the event.
func (b *Bus) PublishPublicKey(k *adapter.PublicKey) {
	b.ctx.setPublicKey(k)
	b.publish(Event{Kind: PublicKeyEvent, Payload: k})
}

// PublishOperationSucceeded publishes OPERATION_SUCCEEDED with an
// operation-defined result payload (e.g. serialized tx, signature).
func (b *Bus) PublishOperationSucceeded(payload any) {
	b.publish(Event{Kind: OperationSucceeded, Payload: payload})
}

// PublishOperationFailed records the failure on Context then publishes
// OPERATION_FAILED.
func (b *Bus) PublishOperationFailed(f *adapter.Failure) {
	b.ctx.setFailure(f)
	b.publish(Event{Kind: OperationFailed, Payload: f})
}
