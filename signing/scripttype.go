package signing

import (
	"github.com/pkt-cash/pktd/chaincfg"
	"github.com/pkt-cash/pktd/txscript"

	"trezorhid.dev/core/errcode"
)

// addressForScript implements spec.md §4.5's script-type resolution rule
// for current-transaction outputs: try P2PKH, then P2SH, else fail the
// job with IllegalOutputScript. Multisig and witness scripts are out of
// scope (spec.md Non-goals).
func addressForScript(script []byte, params *chaincfg.Params) (string, error) {
	class := txscript.GetScriptClass(script)
	switch class {
	case txscript.PubKeyHashTy, txscript.ScriptHashTy:
		addrs, _, _, err := txscript.ExtractPkScriptAddrs(script, params)
		if err != nil || len(addrs) != 1 {
			return "", errcode.Newf(errcode.IllegalOutputScript, "script class %s did not yield exactly one address", class)
		}
		return addrs[0].EncodeAddress(), nil
	default:
		return "", errcode.Newf(errcode.IllegalOutputScript, "unsupported script class %s", class)
	}
}
