// Package transport implements the HID report framing described in
// spec.md §4.1/§6: variable-length protobuf messages are packed across
// fixed 64-byte HID reports with a "##" sentinel header on the first
// report of a message. The framing here mirrors the header/checksum
// split in node/p2p's WriteMessage/ReadMessage, adapted from a TCP byte
// stream to a sequence of fixed-size HID reports.
package transport

import "trezorhid.dev/core/errcode"

const (
	// ReportSize is the fixed HID report length, report-id byte included.
	ReportSize = 64

	// ReportPayloadSize is the number of payload bytes per report once
	// the leading report-id byte is removed.
	ReportPayloadSize = ReportSize - 1

	// ReportID is byte 0 of every HID report ('?').
	ReportID byte = 0x3F

	// sentinelLen is the length of the "##" marker starting a message.
	sentinelLen = 2

	// headerLen is sentinel(2) + type_tag(2) + body_size(4) = 8 bytes,
	// carried in the payload of the first report of a message.
	headerLen = sentinelLen + 2 + 4

	// firstReportBodyBytes is how many body bytes fit alongside the
	// 8-byte header in the first report's 63 payload bytes.
	firstReportBodyBytes = ReportPayloadSize - headerLen

	// DefaultMaxFrameBytes is the reassembly safety cap (§4.1 errors).
	DefaultMaxFrameBytes = 32 * 1024
)

// sentinel is the two bytes that mark the first report of a message.
var sentinel = [sentinelLen]byte{'#', '#'}

// isSentinel reports whether the first two bytes of payload are "##".
func isSentinel(payload []byte) bool {
	return len(payload) >= sentinelLen && payload[0] == sentinel[0] && payload[1] == sentinel[1]
}

// malformed builds a MalformedFrame error with context.
func malformed(detail string) error {
	return errcode.New(errcode.MalformedFrame, detail)
}
