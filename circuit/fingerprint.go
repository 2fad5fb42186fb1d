package circuit

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a short content digest of a compiled circuit:
// every wire's name and dense dependency, in wire order. Two circuits
// with the same fingerprint were compiled from the same gadget source,
// which a CLI run can print next to its run id so a stale coefficient
// file (written against a since-edited gadget) is easy to spot.
func Fingerprint(c *Circuit) string {
	h, _ := blake2b.New256(nil)
	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeUint(uint64(c.Cfg.ShareCount))
	writeUint(uint64(c.Cfg.SecretCount))
	writeUint(uint64(c.Cfg.RandomCount))
	writeUint(uint64(c.Cfg.MultCount))
	writeUint(uint64(c.Cfg.CorrectionOutputCount))
	writeUint(uint64(c.OutputCount))
	for _, w := range c.Wires {
		h.Write([]byte(w.Name))
		for i := 0; i < 2; i++ {
			for _, s := range w.Dense.Secrets[i] {
				writeUint(uint64(s))
			}
		}
		for _, v := range w.Dense.Randoms {
			writeUint(uint64(v))
		}
		for _, v := range w.Dense.CorrectionOutputs {
			writeUint(uint64(v))
		}
		for _, v := range w.Dense.Mults {
			writeUint(uint64(v))
		}
		writeUint(uint64(w.Dense.Constant))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
