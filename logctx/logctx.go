// Package logctx wires the pktd-lineage leveled logger into named
// subsystems, the way pktd/lnd packages each carry their own four-letter
// subsystem logger (e.g. PEER, SRVR) registered with a shared backend.
package logctx

import (
	"os"

	"github.com/pkt-cash/pktd/pktlog/log"
)

var backend = log.NewBackend(os.Stderr)

// Subsystem names, four letters to match the pktd convention.
const (
	SubsystemTransport = "TRSP"
	SubsystemSession   = "SESS"
	SubsystemSigning   = "SIGN"
	SubsystemHierarchy = "HIER"
)

// New returns a named subsystem logger at the given level ("info" by
// default when level is empty or unrecognized).
func New(subsystem, level string) log.Logger {
	l := backend.Logger(subsystem)
	lvl, ok := log.LevelFromString(level)
	if !ok {
		lvl = log.LevelInfo
	}
	l.SetLevel(lvl)
	return l
}

// Disabled returns a logger that discards everything, for use in tests
// and library callers that haven't wired a backend.
func Disabled() log.Logger {
	return log.Disabled
}
