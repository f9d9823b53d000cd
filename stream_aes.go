//go:build dilithium_aes

package dilithium

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha3"
)

// stream128 and stream256 back matrix/secret expansion with AES-256-CTR
// instead of SHAKE (spec section 4.3, 9). The IV is nonce_lo || nonce_hi
// padded with zeros to the AES block size, and the key is the seed (or,
// for seeds longer than 32 bytes, its first 32 bytes — AES-256 keys are
// fixed size while SHAKE seeds here run up to 64 bytes).
type stream128 struct {
	s cipher.Stream
}

type stream256 struct {
	s cipher.Stream
}

func aesKey(seed []byte) []byte {
	if len(seed) > 32 {
		return seed[:32]
	}
	key := make([]byte, 32)
	copy(key, seed)
	return key
}

func newAESCTRStream(seed []byte, nonceLo, nonceHi byte) cipher.Stream {
	block, err := aes.NewCipher(aesKey(seed))
	if err != nil {
		panic("dilithium: aes-256 key setup failed: " + err.Error())
	}
	var iv [aes.BlockSize]byte
	iv[0] = nonceLo
	iv[1] = nonceHi
	return cipher.NewCTR(block, iv[:])
}

// newStream128 keys AES-256-CTR with rho (32 bytes) and a 2-byte (s, r) nonce.
func newStream128(rho []byte, s, r byte) *stream128 {
	return &stream128{s: newAESCTRStream(rho, s, r)}
}

func (st *stream128) squeeze(out []byte) {
	for i := range out {
		out[i] = 0
	}
	st.s.XORKeyStream(out, out)
}

// newStream256 keys AES-256-CTR with seed and a little-endian 16-bit nonce.
func newStream256(seed []byte, nonce uint16) *stream256 {
	return &stream256{s: newAESCTRStream(seed, byte(nonce), byte(nonce>>8))}
}

func (st *stream256) squeeze(out []byte) {
	for i := range out {
		out[i] = 0
	}
	st.s.XORKeyStream(out, out)
}

// newChallengeStream absorbs a 32-byte challenge seed into SHAKE-256: the
// challenge polynomial is sampled with SHAKE-256 under both backends.
func newChallengeStream(seed []byte) *stream256 {
	h := sha3.NewSHAKE256()
	h.Write(seed)
	return &stream256{s: shakeKeystream{h: h}}
}

// shakeKeystream presents SHAKE-256 output as a cipher.Stream keystream.
type shakeKeystream struct {
	h *sha3.SHAKE
}

func (k shakeKeystream) XORKeyStream(dst, src []byte) {
	buf := make([]byte, len(src))
	k.h.Read(buf)
	for i := range src {
		dst[i] = src[i] ^ buf[i]
	}
}
