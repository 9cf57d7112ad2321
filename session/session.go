// Package session implements the Session Client (C4): the half-duplex
// request/reprompt-loop engine sitting on top of the HID Framer (C1),
// Codec Registry (C2), and Vendor Adapter (C3), publishing events on the
// Event Bus (C7) as it goes (spec.md §4.4).
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"trezorhid.dev/core/adapter"
	"trezorhid.dev/core/errcode"
	"trezorhid.dev/core/event"
	"trezorhid.dev/core/hdpath"
	"trezorhid.dev/core/hierarchy"
	"trezorhid.dev/core/logctx"
	"trezorhid.dev/core/protocol"
	"trezorhid.dev/core/transport"
)

// Config is the ambient ClientConfig from SPEC_FULL.md §3: HID backend
// knobs constructed the way node.Config/node.DefaultConfig() is, a plain
// struct with a Default constructor and no config-file library.
type Config struct {
	Vendor               protocol.Vendor
	LengthPrefixedWrites bool
	MaxFrameBytes        int
	HierarchyCachePath   string
	LogLevel             string
}

// DefaultConfig returns the Config a Trezor-family device over a raw
// Linux HID backend would use.
func DefaultConfig() Config {
	return Config{
		Vendor:               protocol.VendorTrezor,
		LengthPrefixedWrites: false,
		MaxFrameBytes:        transport.DefaultMaxFrameBytes,
		HierarchyCachePath:   "",
		LogLevel:             "info",
	}
}

// Conn is the bidirectional HID transport the Client frames messages
// over; a real backend wraps a USB HID handle, tests use an in-memory
// pipe (spec.md §1 Non-goals: USB enumeration/raw read-write are an
// external collaborator, not this module's concern).
type Conn interface {
	io.Reader
	io.Writer
}

// Client is the Session Client (C4).
type Client struct {
	cfg    Config
	conn   Conn
	framer *transport.Framer
	reg    *protocol.Registry
	bus    *event.Bus
	cache  *hierarchy.Cache
	log    interface {
		Debugf(format string, params ...interface{})
		Infof(format string, params ...interface{})
		Warnf(format string, params ...interface{})
		Errorf(format string, params ...interface{})
	}

	mu            sync.Mutex
	walletPresent bool
	signingBusy   bool
	pinCh         chan string
	passphraseCh  chan string
}

// New builds a Client bound to conn. Call Start before issuing requests.
func New(cfg Config, conn Conn) *Client {
	return &Client{
		cfg: cfg,
		conn: conn,
		framer: transport.New(transport.Options{
			LengthPrefixedOutbound: cfg.LengthPrefixedWrites,
			MaxFrameBytes:          cfg.MaxFrameBytes,
		}),
		reg: protocol.NewRegistry(),
		bus: event.New(),
		log: logctx.New(logctx.SubsystemSession, cfg.LogLevel),
	}
}

// Bus exposes the event bus for subscription.
func (c *Client) Bus() *event.Bus { return c.bus }

// Start opens the on-disk hierarchy cache (if configured) and sends
// Initialize, publishing DEVICE_READY on success (spec.md scenario 1).
func (c *Client) Start() error {
	if c.cfg.HierarchyCachePath != "" {
		cache, err := hierarchy.Open(c.cfg.HierarchyCachePath)
		if err != nil {
			return err
		}
		c.cache = cache
	}

	msg, err := c.roundTrip(protocol.LabelInitialize, &protocol.Initialize{})
	if err != nil {
		return err
	}
	if msg.Label != protocol.LabelFeatures {
		return errcode.Newf(errcode.SchemaError, "Start: expected Features, got %s", msg.Label)
	}
	feat, err := adapter.ToFeatures(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.walletPresent = true
	c.mu.Unlock()
	c.bus.PublishDeviceReady(feat)
	return nil
}

// Stop releases the hierarchy cache. It does not close the transport,
// which the embedder owns (spec.md §1 Non-goals).
func (c *Client) Stop() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

// IsWalletPresent reports whether Start succeeded and no DeviceDetached
// has since been observed.
func (c *Client) IsWalletPresent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.walletPresent
}

func (c *Client) markDetached() {
	c.mu.Lock()
	c.walletPresent = false
	c.signingBusy = false
	c.mu.Unlock()
	c.bus.PublishDeviceDetached()
}

// Cancel writes a Cancel message and returns. It does not read a
// response, and it does not wake a reprompt loop that is waiting for
// ProvidePIN or ProvidePassphrase; an in-flight loop ends only when it
// reads the device's reply (a Failure ends it with DeviceFailure).
func (c *Client) Cancel() error {
	return c.send(protocol.LabelCancel, &protocol.Cancel{})
}

// ProvidePIN delivers a previously-requested PIN to the in-flight
// operation's reprompt loop. Returns an error if no PIN is pending.
func (c *Client) ProvidePIN(pin string) error {
	c.mu.Lock()
	ch := c.pinCh
	c.mu.Unlock()
	if ch == nil {
		return errcode.New(errcode.SchemaError, "ProvidePIN: no PIN prompt pending")
	}
	ch <- pin
	return nil
}

// ProvidePassphrase delivers a previously-requested passphrase to the
// in-flight operation's reprompt loop.
func (c *Client) ProvidePassphrase(passphrase string) error {
	c.mu.Lock()
	ch := c.passphraseCh
	c.mu.Unlock()
	if ch == nil {
		return errcode.New(errcode.SchemaError, "ProvidePassphrase: no passphrase prompt pending")
	}
	ch <- passphrase
	return nil
}

// send serializes record under label's registered tag and writes one HID
// message.
func (c *Client) send(label protocol.Label, record any) error {
	tag, ok := c.reg.TagFor(c.cfg.Vendor, label)
	if !ok {
		return errcode.Newf(errcode.UnknownType, "send: no tag registered for %s/%s", c.cfg.Vendor, label)
	}
	body, err := c.reg.Serialize(record)
	if err != nil {
		return err
	}
	if err := c.framer.Write(c.conn, tag, body); err != nil {
		if errors.Is(err, errcode.Of(errcode.TransportClosed)) {
			c.markDetached()
		}
		return err
	}
	return nil
}

// receive reads and decodes the next message, transparently skipping
// UnknownType/SchemaError frames (spec.md §7: log and drop, don't fail
// the session) until a decodable message or a transport error surfaces.
func (c *Client) receive() (*protocol.Message, error) {
	for {
		tag, body, err := c.framer.Read(c.conn)
		if err != nil {
			if errors.Is(err, errcode.Of(errcode.TransportClosed)) {
				c.markDetached()
			}
			return nil, err
		}
		msg, perr := c.reg.Parse(c.cfg.Vendor, protocol.TypeTag(tag), body)
		if perr != nil {
			c.log.Warnf("dropping undecodable frame tag=%d: %v", tag, perr)
			continue
		}
		return msg, nil
	}
}

// roundTrip sends one message and returns the device's reply, without
// following reprompts. Most operations use withReprompts instead.
func (c *Client) roundTrip(label protocol.Label, record any) (*protocol.Message, error) {
	if err := c.send(label, record); err != nil {
		return nil, err
	}
	return c.receive()
}

// withReprompts drives the half-duplex reprompt loop (spec.md §4.4)
// until a terminal message (Success, Failure, or a non-reprompt result
// label) arrives.
func (c *Client) withReprompts(label protocol.Label, record any) (*protocol.Message, error) {
	msg, err := c.roundTrip(label, record)
	if err != nil {
		return nil, err
	}
	for {
		switch msg.Label {
		case protocol.LabelPinMatrixRequest:
			req, aerr := adapter.ToPinMatrixRequest(msg)
			if aerr != nil {
				return nil, aerr
			}
			ch := c.armPIN()
			c.bus.PublishShowPinEntry(req)
			pin := c.awaitPIN(ch)
			msg, err = c.roundTrip(protocol.LabelPinMatrixAck, &protocol.PinMatrixAck{PIN: pin})
		case protocol.LabelPassphraseRequest:
			ch := c.armPassphrase()
			c.bus.PublishShowPassphraseEntry()
			pass := c.awaitPassphrase(ch)
			msg, err = c.roundTrip(protocol.LabelPassphraseAck, &protocol.PassphraseAck{Passphrase: pass})
		case protocol.LabelButtonRequest:
			req, aerr := adapter.ToButtonRequest(msg)
			if aerr != nil {
				return nil, aerr
			}
			c.bus.PublishShowButtonPress(req)
			msg, err = c.roundTrip(protocol.LabelButtonAck, &protocol.ButtonAck{})
		case protocol.LabelFailure:
			fail, aerr := adapter.ToFailure(msg)
			if aerr != nil {
				return nil, aerr
			}
			c.bus.PublishOperationFailed(fail)
			return nil, errcode.Newf(errcode.DeviceFailure, "device failure %d: %s", fail.Code, fail.Message)
		default:
			return msg, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// armPIN registers a fresh PIN channel before the prompt is published, so
// a ProvidePIN call racing the publish can never see "no prompt pending".
func (c *Client) armPIN() chan string {
	ch := make(chan string, 1)
	c.mu.Lock()
	c.pinCh = ch
	c.mu.Unlock()
	return ch
}

func (c *Client) awaitPIN(ch chan string) string {
	pin := <-ch
	c.mu.Lock()
	c.pinCh = nil
	c.mu.Unlock()
	return pin
}

func (c *Client) armPassphrase() chan string {
	ch := make(chan string, 1)
	c.mu.Lock()
	c.passphraseCh = ch
	c.mu.Unlock()
	return ch
}

func (c *Client) awaitPassphrase(ch chan string) string {
	pass := <-ch
	c.mu.Lock()
	c.passphraseCh = nil
	c.mu.Unlock()
	return pass
}

// RequestFeatures re-queries device Features (GetFeatures has an empty
// payload in the closed label union, spec.md §4.2).
func (c *Client) RequestFeatures() (*adapter.Features, error) {
	msg, err := c.withReprompts(protocol.LabelGetFeatures, &struct{}{})
	if err != nil {
		return nil, err
	}
	feat, err := adapter.ToFeatures(msg)
	if err != nil {
		return nil, err
	}
	c.bus.PublishDeviceReady(feat)
	return feat, nil
}

// RequestPublicKey requests the extended public key at path.
func (c *Client) RequestPublicKey(path []uint32) (*adapter.PublicKey, error) {
	msg, err := c.withReprompts(protocol.LabelGetPublicKey, &protocol.GetPublicKey{AddressN: path})
	if err != nil {
		return nil, err
	}
	pub, err := adapter.ToPublicKey(msg)
	if err != nil {
		return nil, err
	}
	c.bus.PublishPublicKey(pub)
	return pub, nil
}

// RequestDeterministicHierarchy implements spec.md §4.4's policy: issue
// GetPublicKey, reconstruct (chaincode, pubkey) from the response (or
// decode the xpub string if the vendor only populates that), cache it,
// and publish DETERMINISTIC_HIERARCHY. A bbolt cache hit (SPEC_FULL.md
// §5.4) short-circuits the device round trip entirely.
func (c *Client) RequestDeterministicHierarchy(accountPath []uint32) (*event.DeterministicKey, error) {
	if c.cache != nil {
		if cached, ok, err := c.cache.Get(accountPath); err == nil && ok {
			c.bus.PublishDeterministicHierarchy(cached)
			return cached, nil
		}
	}

	pub, err := c.RequestPublicKey(accountPath)
	if err != nil {
		return nil, err
	}

	chainCode, pubKey := pub.ChainCode, pub.PublicKeyB
	if len(chainCode) == 0 && pub.Xpub != "" {
		chainCode, pubKey, _, _, _, err = hierarchy.DecodeXpub(pub.Xpub)
		if err != nil {
			return nil, errcode.Wrap(errcode.SchemaError, err)
		}
	}

	key := &event.DeterministicKey{
		Path:      accountPath,
		ChainCode: chainCode,
		PublicKey: pubKey,
		Xpub:      pub.Xpub,
	}
	if c.cache != nil {
		if err := c.cache.Put(key); err != nil {
			c.log.Warnf("hierarchy cache write failed: %v", err)
		}
	}
	c.bus.PublishDeterministicHierarchy(key)
	return key, nil
}

// RequestAddress implements requestAddress(account, purpose, index, showOnDevice).
func (c *Client) RequestAddress(account uint32, purpose adapter.KeyPurpose, index uint32, showOnDevice bool) (*adapter.Address, error) {
	path := hdpath.ForBip44(account, purpose, index)
	msg, err := c.withReprompts(protocol.LabelGetAddress, &protocol.GetAddress{
		AddressN:    path,
		ShowDisplay: showOnDevice,
		ScriptType:  adapter.ScriptTypeFor(purpose),
	})
	if err != nil {
		return nil, err
	}
	addr, err := adapter.ToAddress(msg)
	if err != nil {
		return nil, err
	}
	c.bus.PublishAddress(addr)
	return addr, nil
}

// beginSigning reserves the single in-flight signing slot (spec.md §4.5:
// only one signing job at a time).
func (c *Client) beginSigning() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.signingBusy {
		return errcode.Of(errcode.Busy)
	}
	c.signingBusy = true
	return nil
}

func (c *Client) endSigning() {
	c.mu.Lock()
	c.signingBusy = false
	c.mu.Unlock()
}

func (c *Client) String() string {
	return fmt.Sprintf("session.Client{vendor=%s}", c.cfg.Vendor)
}
