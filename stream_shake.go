//go:build !dilithium_aes

package dilithium

import "crypto/sha3"

// stream128 and stream256 hide whether the XOF backing matrix/secret
// expansion is SHAKE-128/256 or AES-256-CTR (spec section 4.3/9). This file
// provides the default SHAKE backend; stream_aes.go provides the
// alternative, selected at compile time with the dilithium_aes build tag.
type stream128 struct {
	h *sha3.SHAKE
}

type stream256 struct {
	h *sha3.SHAKE
}

// newStream128 absorbs rho || s || r and finalizes, ready to squeeze.
func newStream128(rho []byte, s, r byte) *stream128 {
	h := sha3.NewSHAKE128()
	h.Write(rho)
	h.Write([]byte{s, r})
	return &stream128{h: h}
}

func (st *stream128) squeeze(out []byte) {
	st.h.Read(out)
}

// newStream256 absorbs seed || nonce_lo || nonce_hi and finalizes.
func newStream256(seed []byte, nonce uint16) *stream256 {
	h := sha3.NewSHAKE256()
	h.Write(seed)
	h.Write([]byte{byte(nonce), byte(nonce >> 8)})
	return &stream256{h: h}
}

func (st *stream256) squeeze(out []byte) {
	st.h.Read(out)
}

// newChallengeStream absorbs a 32-byte challenge seed into SHAKE-256.
func newChallengeStream(seed []byte) *stream256 {
	h := sha3.NewSHAKE256()
	h.Write(seed)
	return &stream256{h: h}
}
