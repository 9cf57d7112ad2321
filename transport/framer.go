package transport

import (
	"encoding/binary"
	"io"

	"trezorhid.dev/core/errcode"
	"trezorhid.dev/core/logctx"
)

// Options parameterizes the HID backend quirks noted in spec.md §9: some
// platform backends absorb the outbound length byte into the report id,
// others require byte 0 of the first outbound report to literally carry
// the payload length (63).
type Options struct {
	// LengthPrefixedOutbound makes byte 0 of the *first* outbound report
	// carry the payload length (ReportPayloadSize) instead of ReportID.
	LengthPrefixedOutbound bool

	// MaxFrameBytes caps how large a reassembled message may grow before
	// Read gives up with MalformedFrame. Zero means DefaultMaxFrameBytes.
	MaxFrameBytes int
}

func (o Options) maxFrameBytes() int {
	if o.MaxFrameBytes <= 0 {
		return DefaultMaxFrameBytes
	}
	return o.MaxFrameBytes
}

// Framer packs and reassembles HID reports for one transport session.
type Framer struct {
	opts Options
	log  interface {
		Debugf(format string, params ...interface{})
		Warnf(format string, params ...interface{})
	}
}

// New builds a Framer that logs through the TRSP subsystem logger at info
// level.
func New(opts Options) *Framer {
	return &Framer{opts: opts, log: logctx.New(logctx.SubsystemTransport, "info")}
}

// Write frames typeTag/body into the sentinel block described in spec.md
// §4.1 and emits it as successive 64-byte HID reports to sink.
func (f *Framer) Write(sink io.Writer, typeTag uint16, body []byte) error {
	block := make([]byte, 0, headerLen+len(body)+ReportPayloadSize)
	block = append(block, sentinel[:]...)
	var tagBuf [2]byte
	binary.BigEndian.PutUint16(tagBuf[:], typeTag)
	block = append(block, tagBuf[:]...)
	var sizeBuf [4]byte
	binary.BigEndian.PutUint32(sizeBuf[:], uint32(len(body)))
	block = append(block, sizeBuf[:]...)
	block = append(block, body...)

	if pad := len(block) % ReportPayloadSize; pad != 0 {
		block = append(block, make([]byte, ReportPayloadSize-pad)...)
	}

	report := make([]byte, ReportSize)
	for i := 0; i < len(block); i += ReportPayloadSize {
		chunk := block[i : i+ReportPayloadSize]
		if i == 0 && f.opts.LengthPrefixedOutbound {
			report[0] = byte(ReportPayloadSize)
		} else {
			report[0] = ReportID
		}
		copy(report[1:], chunk)
		if _, err := sink.Write(report); err != nil {
			return errcode.Wrap(errcode.TransportClosed, err)
		}
	}
	f.log.Debugf("wrote message type_tag=%d body_bytes=%d reports=%d", typeTag, len(body), len(block)/ReportPayloadSize)
	return nil
}

// Read reassembles the next message from source, skipping any reports
// that precede a valid "##" sentinel as required by spec.md §8.
func (f *Framer) Read(source io.Reader) (typeTag uint16, body []byte, err error) {
	report := make([]byte, ReportSize)

	var payload []byte
	for {
		if _, rerr := io.ReadFull(source, report); rerr != nil {
			return 0, nil, errcode.Wrap(errcode.TransportClosed, rerr)
		}
		candidate := report[1:]
		if isSentinel(candidate) {
			payload = candidate
			break
		}
		f.log.Debugf("discarding pre-sentinel report, first byte=0x%02x", report[0])
	}

	typeTag = binary.BigEndian.Uint16(payload[2:4])
	bodySize := binary.BigEndian.Uint32(payload[4:8])
	if int(bodySize) > f.opts.maxFrameBytes() {
		return 0, nil, malformed("declared body_size exceeds MaxFrameBytes")
	}

	buf := make([]byte, 0, bodySize)
	buf = append(buf, payload[headerLen:]...)

	for len(buf) < int(bodySize) {
		if len(buf) > f.opts.maxFrameBytes() {
			return 0, nil, malformed("reassembly exceeded MaxFrameBytes")
		}
		if _, rerr := io.ReadFull(source, report); rerr != nil {
			return 0, nil, errcode.Wrap(errcode.TransportClosed, rerr)
		}
		if report[0] != ReportID {
			f.log.Warnf("skipping continuation report with unexpected report id 0x%02x", report[0])
			continue
		}
		buf = append(buf, report[1:]...)
	}

	return typeTag, buf[:bodySize], nil
}
