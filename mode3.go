package dilithium

import (
	"crypto"
	"crypto/sha3"
	"io"
)

// PrivateKey3 is the private key for mode 3 (k=6, l=5).
type PrivateKey3 struct {
	rho [32]byte
	key [32]byte
	tr  [32]byte
	s1  [l3]ringElement
	s2  [k3]ringElement
	t0  [k3]ringElement
	a   [k3 * l3]nttElement
}

// PublicKey3 is the public key for mode 3.
type PublicKey3 struct {
	rho [32]byte
	t1  [k3]ringElement
	tr  [32]byte
	a   [k3 * l3]nttElement
}

// Key3 is a mode 3 key pair, holding both private and public components.
type Key3 struct {
	PrivateKey3
	seed [32]byte
	t1   [k3]ringElement
}

// GenerateKey3 generates a new mode 3 key pair from fresh randomness.
func GenerateKey3(rand io.Reader) (*Key3, error) {
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, ErrRandomBytesGeneration
	}
	return NewKey3(seed[:])
}

// NewKey3 derives a mode 3 key pair from a 32-byte seed.
func NewKey3(seed []byte) (*Key3, error) {
	if len(seed) != SeedSize {
		return nil, ErrInput
	}
	key := &Key3{}
	copy(key.seed[:], seed)
	key.generate()
	return key, nil
}

// generate expands the seed into rho, key, s1, s2, the matrix A, and t.
func (key *Key3) generate() {
	h := sha3.NewSHAKE256()
	h.Write(key.seed[:])

	var expanded [128]byte
	h.Read(expanded[:])

	copy(key.rho[:], expanded[:32])
	rho1 := expanded[32:96]
	copy(key.key[:], expanded[96:128])

	for i := 0; i < l3; i++ {
		key.s1[i] = sampleBoundedPoly(rho1, eta4, uint16(i))
	}
	for i := 0; i < k3; i++ {
		key.s2[i] = sampleBoundedPoly(rho1, eta4, uint16(l3+i))
	}

	for i := 0; i < k3; i++ {
		for j := 0; j < l3; j++ {
			key.a[i*l3+j] = sampleNTTPoly(key.rho[:], byte(j), byte(i))
		}
	}

	var s1NTT [l3]nttElement
	for i := 0; i < l3; i++ {
		s1NTT[i] = ntt(key.s1[i])
	}

	var t [k3]ringElement
	for i := 0; i < k3; i++ {
		var acc nttElement
		for j := 0; j < l3; j++ {
			acc = polyAdd(acc, nttMul(key.a[i*l3+j], s1NTT[j]))
		}
		t[i] = polyAdd(invNTT(acc), key.s2[i])

		for j := 0; j < n; j++ {
			key.t1[i][j], key.t0[i][j] = power2Round(t[i][j])
		}
	}

	pkBytes := key.publicKeyBytes()
	h2 := sha3.NewSHAKE256()
	h2.Write(pkBytes)
	h2.Read(key.tr[:])
}

// publicKeyBytes encodes rho || packed(t1).
func (key *Key3) publicKeyBytes() []byte {
	b := make([]byte, PublicKeySize3)
	copy(b[:32], key.rho[:])
	offset := 32
	for i := 0; i < k3; i++ {
		copy(b[offset:], packT1(key.t1[i]))
		offset += encodingSize10
	}
	return b
}

// PublicKey returns the public half of the key pair.
func (key *Key3) PublicKey() *PublicKey3 {
	return &PublicKey3{rho: key.rho, t1: key.t1, tr: key.tr, a: key.a}
}

// Bytes returns the 32-byte seed the key pair was derived from.
func (key *Key3) Bytes() []byte {
	b := make([]byte, SeedSize)
	copy(b, key.seed[:])
	return b
}

// PrivateKeyBytes returns the fully encoded private key.
func (key *Key3) PrivateKeyBytes() []byte {
	return key.PrivateKey3.Bytes()
}

// Bytes encodes the private key as rho || key || tr || s1 || s2 || t0.
func (sk *PrivateKey3) Bytes() []byte {
	b := make([]byte, PrivateKeySize3)
	copy(b[:32], sk.rho[:])
	copy(b[32:64], sk.key[:])
	copy(b[64:96], sk.tr[:])

	offset := 96
	for i := 0; i < l3; i++ {
		copy(b[offset:], packEta4(sk.s1[i]))
		offset += encodingSize4
	}
	for i := 0; i < k3; i++ {
		copy(b[offset:], packEta4(sk.s2[i]))
		offset += encodingSize4
	}
	for i := 0; i < k3; i++ {
		copy(b[offset:], packT0(sk.t0[i]))
		offset += encodingSize13
	}
	return b
}

// Bytes encodes the public key as rho || packed(t1).
func (pk *PublicKey3) Bytes() []byte {
	b := make([]byte, PublicKeySize3)
	copy(b[:32], pk.rho[:])
	offset := 32
	for i := 0; i < k3; i++ {
		copy(b[offset:], packT1(pk.t1[i]))
		offset += encodingSize10
	}
	return b
}

// Equal reports whether pk and other encode the same public key.
func (pk *PublicKey3) Equal(other crypto.PublicKey) bool {
	o, ok := other.(*PublicKey3)
	if !ok {
		return false
	}
	return pk.rho == o.rho && pk.t1 == o.t1
}

// NewPublicKey3 decodes an encoded mode 3 public key.
func NewPublicKey3(b []byte) (*PublicKey3, error) {
	if len(b) != PublicKeySize3 {
		return nil, ErrInput
	}
	pk := &PublicKey3{}
	copy(pk.rho[:], b[:32])

	offset := 32
	for i := 0; i < k3; i++ {
		pk.t1[i] = unpackT1(b[offset : offset+encodingSize10])
		offset += encodingSize10
	}

	for i := 0; i < k3; i++ {
		for j := 0; j < l3; j++ {
			pk.a[i*l3+j] = sampleNTTPoly(pk.rho[:], byte(j), byte(i))
		}
	}

	h := sha3.NewSHAKE256()
	h.Write(b)
	h.Read(pk.tr[:])

	return pk, nil
}

// NewPrivateKey3 decodes an encoded mode 3 private key.
func NewPrivateKey3(b []byte) (*PrivateKey3, error) {
	if len(b) != PrivateKeySize3 {
		return nil, ErrInput
	}
	sk := &PrivateKey3{}
	copy(sk.rho[:], b[:32])
	copy(sk.key[:], b[32:64])
	copy(sk.tr[:], b[64:96])

	offset := 96
	var err error
	for i := 0; i < l3; i++ {
		sk.s1[i], err = unpackEta4(b[offset : offset+encodingSize4])
		if err != nil {
			return nil, err
		}
		offset += encodingSize4
	}
	for i := 0; i < k3; i++ {
		sk.s2[i], err = unpackEta4(b[offset : offset+encodingSize4])
		if err != nil {
			return nil, err
		}
		offset += encodingSize4
	}
	for i := 0; i < k3; i++ {
		sk.t0[i] = unpackT0(b[offset : offset+encodingSize13])
		offset += encodingSize13
	}

	for i := 0; i < k3; i++ {
		for j := 0; j < l3; j++ {
			sk.a[i*l3+j] = sampleNTTPoly(sk.rho[:], byte(j), byte(i))
		}
	}

	return sk, nil
}

// Public returns the public key matching this private key. Implements
// crypto.Signer.
func (sk *PrivateKey3) Public() crypto.PublicKey {
	pk := &PublicKey3{rho: sk.rho, tr: sk.tr, a: sk.a}

	var s1NTT [l3]nttElement
	for i := 0; i < l3; i++ {
		s1NTT[i] = ntt(sk.s1[i])
	}
	for i := 0; i < k3; i++ {
		var acc nttElement
		for j := 0; j < l3; j++ {
			acc = polyAdd(acc, nttMul(sk.a[i*l3+j], s1NTT[j]))
		}
		t := polyAdd(invNTT(acc), sk.s2[i])
		for j := 0; j < n; j++ {
			pk.t1[i][j], _ = power2Round(t[j])
		}
	}
	return pk
}

// Sign signs digest with the private key. Implements crypto.Signer: opts of
// type *SignerOpts with Deterministic set selects deterministic signing,
// anything else (including nil) selects randomised signing.
func (sk *PrivateKey3) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	if o, ok := opts.(*SignerOpts); ok && o != nil && o.Deterministic {
		return sk.SignDeterministic(digest)
	}
	var rhoPrime [64]byte
	if _, err := io.ReadFull(rand, rhoPrime[:]); err != nil {
		return nil, ErrRandomBytesGeneration
	}
	return sk.signInternal(rhoPrime[:], digest)
}

// SignDeterministic signs msg without consuming any randomness; signing the
// same message twice with the same key yields byte-identical signatures.
// rho' = SHAKE256(K || mu, 64) per spec section 4.8 step 3.
func (sk *PrivateKey3) SignDeterministic(msg []byte) ([]byte, error) {
	h := sha3.NewSHAKE256()
	h.Write(sk.tr[:])
	h.Write(msg)
	var mu [64]byte
	h.Read(mu[:])

	h.Reset()
	h.Write(sk.key[:])
	h.Write(mu[:])
	var rhoPrime [64]byte
	h.Read(rhoPrime[:])

	return sk.signInternal(rhoPrime[:], msg)
}

// signInternal runs the Fiat-Shamir-with-aborts loop (spec section 4.8).
// rhoPrime is 64 bytes: either drawn raw from the caller's io.Reader
// (randomised signing) or SHAKE256(K || mu, 64) (deterministic signing).
func (sk *PrivateKey3) signInternal(rhoPrime, message []byte) ([]byte, error) {
	h := sha3.NewSHAKE256()
	h.Write(sk.tr[:])
	h.Write(message)
	var mu [64]byte
	h.Read(mu[:])

	var s1NTT [l3]nttElement
	var s2NTT, t0NTT [k3]nttElement
	for i := 0; i < l3; i++ {
		s1NTT[i] = ntt(sk.s1[i])
	}
	for i := 0; i < k3; i++ {
		s2NTT[i] = ntt(sk.s2[i])
		t0NTT[i] = ntt(sk.t0[i])
	}

	for iter := 0; iter < maxSignIterations; iter++ {
		kappa := uint16(iter * l3)
		var y [l3]ringElement
		for i := 0; i < l3; i++ {
			y[i] = expandMask(rhoPrime[:], kappa+uint16(i), gamma1Bits19)
		}

		var yNTT [l3]nttElement
		for i := 0; i < l3; i++ {
			yNTT[i] = ntt(y[i])
		}

		var w, w1 [k3]ringElement
		for i := 0; i < k3; i++ {
			var acc nttElement
			for j := 0; j < l3; j++ {
				acc = polyAdd(acc, nttMul(sk.a[i*l3+j], yNTT[j]))
			}
			w[i] = invNTT(acc)
			for j := 0; j < n; j++ {
				w1[i][j] = fieldElement(highBits(w[i][j], gamma2QMinus1Div32))
			}
		}

		h.Reset()
		h.Write(mu[:])
		for i := 0; i < k3; i++ {
			h.Write(packW1_4(w1[i]))
		}
		var cTilde [cTildeSize]byte
		h.Read(cTilde[:])

		c := sampleChallenge(cTilde[:], tau49)
		cNTT := ntt(c)

		var z [l3]ringElement
		for i := 0; i < l3; i++ {
			cs1 := invNTT(nttMul(cNTT, s1NTT[i]))
			z[i] = polyAdd(y[i], cs1)
		}
		if vectorInfinityNorm(z[:]) >= gamma1Pow19-beta3 {
			continue
		}

		var r0 [k3][n]int32
		for i := 0; i < k3; i++ {
			cs2 := invNTT(nttMul(cNTT, s2NTT[i]))
			for j := 0; j < n; j++ {
				_, r0[i][j] = decompose(fieldSub(w[i][j], cs2[j]), gamma2QMinus1Div32)
			}
		}
		if vectorInfinityNormSigned(r0[:]) >= int32(gamma2QMinus1Div32-beta3) {
			continue
		}

		var ct0 [k3]ringElement
		for i := 0; i < k3; i++ {
			ct0[i] = invNTT(nttMul(cNTT, t0NTT[i]))
		}
		if vectorInfinityNorm(ct0[:]) >= gamma2QMinus1Div32 {
			continue
		}

		var hints [k3]ringElement
		for i := 0; i < k3; i++ {
			cs2 := invNTT(nttMul(cNTT, s2NTT[i]))
			for j := 0; j < n; j++ {
				r := fieldSub(w[i][j], cs2[j])
				hints[i][j] = makeHint(ct0[i][j], r, gamma2QMinus1Div32)
			}
		}
		if countOnes(hints[:]) > omega55 {
			continue
		}

		sig := make([]byte, SignatureSize3)
		copy(sig[:cTildeSize], cTilde[:])
		offset := cTildeSize
		for i := 0; i < l3; i++ {
			copy(sig[offset:], packZ19(z[i]))
			offset += encodingSize20
		}
		copy(sig[offset:], packHint(hints[:], omega55))
		return sig, nil
	}
	return nil, ErrRandomBytesGeneration
}

// Verify checks sig against message, returning nil on success, ErrInput if
// sig is malformed, or ErrVerify if the challenge does not match.
func (pk *PublicKey3) Verify(sig, message []byte) error {
	if len(sig) != SignatureSize3 {
		return ErrInput
	}

	h := sha3.NewSHAKE256()
	h.Write(pk.tr[:])
	h.Write(message)
	var mu [64]byte
	h.Read(mu[:])

	cTilde := sig[:cTildeSize]
	offset := cTildeSize

	var z [l3]ringElement
	for i := 0; i < l3; i++ {
		z[i] = unpackZ19Sig(sig[offset : offset+encodingSize20])
		offset += encodingSize20
	}
	if vectorInfinityNorm(z[:]) >= gamma1Pow19-beta3 {
		return ErrInput
	}

	var hints [k3]ringElement
	if !unpackHint(sig[offset:], hints[:], omega55) {
		return ErrInput
	}

	c := sampleChallenge(cTilde, tau49)
	cNTT := ntt(c)

	var zNTT [l3]nttElement
	for i := 0; i < l3; i++ {
		zNTT[i] = ntt(z[i])
	}

	var t1NTT [k3]nttElement
	for i := 0; i < k3; i++ {
		var t1Scaled ringElement
		for j := 0; j < n; j++ {
			t1Scaled[j] = pk.t1[i][j] << d
		}
		t1NTT[i] = ntt(t1Scaled)
	}

	var w1 [k3]ringElement
	h.Reset()
	h.Write(mu[:])
	for i := 0; i < k3; i++ {
		var acc nttElement
		for j := 0; j < l3; j++ {
			acc = polyAdd(acc, nttMul(pk.a[i*l3+j], zNTT[j]))
		}
		ct1 := nttMul(cNTT, t1NTT[i])
		acc = polySub(acc, ct1)
		wApprox := invNTT(acc)

		for j := 0; j < n; j++ {
			w1[i][j] = useHint(hints[i][j], wApprox[j], gamma2QMinus1Div32)
		}
		h.Write(packW1_4(w1[i]))
	}

	var cTildeCheck [cTildeSize]byte
	h.Read(cTildeCheck[:])

	var diff byte
	for i := range cTilde {
		diff |= cTilde[i] ^ cTildeCheck[i]
	}
	if diff != 0 {
		return ErrVerify
	}
	return nil
}

// Sign signs msg with the key pair's private key, consuming randomness
// from rand.
func (key *Key3) Sign(rand io.Reader, msg []byte) ([]byte, error) {
	return key.PrivateKey3.Sign(rand, msg, nil)
}

// SignDeterministic signs msg with the key pair's private key without
// consuming randomness.
func (key *Key3) SignDeterministic(msg []byte) ([]byte, error) {
	return key.PrivateKey3.SignDeterministic(msg)
}
