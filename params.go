// Package dilithium implements CRYSTALS-Dilithium, a lattice-based
// post-quantum digital signature scheme built on Module-LWE and Module-SIS
// over the ring Z_q[X]/(X^256+1), q = 2^23 - 2^13 + 1.
//
// This is the NIST round-3 submission, not the later FIPS 204 ML-DSA draft:
// the challenge seed c̃ is a fixed 32 bytes regardless of parameter set, and
// no context string is mixed into the signed message. Three parameter sets
// are supported:
//   - mode 2: NIST security category 2
//   - mode 3: NIST security category 3
//   - mode 5: NIST security category 5
//
// Basic usage:
//
//	key, err := dilithium.GenerateKey3(rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	sig, err := key.Sign(rand.Reader, message)
//	if err != nil {
//	    // handle error
//	}
//	err = key.PublicKey().Verify(sig, message)
package dilithium

import "crypto"

// Global Dilithium constants.
const (
	// n is the number of coefficients in polynomials.
	n = 256

	// q is the modulus: q = 2^23 - 2^13 + 1 = 8380417
	q = 8380417

	// d is the number of dropped bits from t.
	d = 13

	// SeedSize is the size of the random seed used for key generation.
	SeedSize = 32

	// cTildeSize is the size of the challenge seed c̃ in a signature.
	// Fixed across all parameter sets (round-3 Dilithium, unlike the
	// λ/4-scaled c̃ of the later FIPS 204 ML-DSA draft).
	cTildeSize = 32
)

// Derived constants.
const (
	qMinus1Div2 = (q - 1) / 2
)

// Parameter-set specific constants.
const (
	// gamma2 values for different modes
	gamma2QMinus1Div88 = (q - 1) / 88 // mode 2
	gamma2QMinus1Div32 = (q - 1) / 32 // mode 3, mode 5

	// gamma1 values (coefficient range of y)
	gamma1Bits17 = 17
	gamma1Bits19 = 19
	gamma1Pow17  = 1 << gamma1Bits17 // mode 2
	gamma1Pow19  = 1 << gamma1Bits19 // mode 3, mode 5

	// eta values (private key coefficient range)
	eta2 = 2 // mode 2, mode 5
	eta4 = 4 // mode 3

	// tau values (number of ±1s in challenge polynomial)
	tau39 = 39 // mode 2
	tau49 = 49 // mode 3
	tau60 = 60 // mode 5

	// omega values (max number of 1s in hint)
	omega80 = 80 // mode 2
	omega55 = 55 // mode 3
	omega75 = 75 // mode 5

	// maxSignIterations caps the Fiat-Shamir-with-aborts loop (spec section 7):
	// exceeding it signals a broken RNG or parameterization, not a normal
	// signing outcome.
	maxSignIterations = 1 << 16
)

// Mode 2 parameters.
const (
	k2 = 4
	l2 = 4

	beta2 = eta2 * tau39

	PublicKeySize2  = 32 + k2*n*10/8
	PrivateKeySize2 = 32 + 32 + 32 + (k2+l2)*n*3/8 + k2*n*13/8
	SignatureSize2  = cTildeSize + l2*n*18/8 + omega80 + k2
)

// Mode 3 parameters.
const (
	k3 = 6
	l3 = 5

	beta3 = eta4 * tau49

	PublicKeySize3  = 32 + k3*n*10/8
	PrivateKeySize3 = 32 + 32 + 32 + (k3+l3)*n*4/8 + k3*n*13/8
	SignatureSize3  = cTildeSize + l3*n*20/8 + omega55 + k3
)

// Mode 5 parameters.
const (
	k5 = 8
	l5 = 7

	beta5 = eta2 * tau60

	PublicKeySize5  = 32 + k5*n*10/8
	PrivateKeySize5 = 32 + 32 + 32 + (k5+l5)*n*3/8 + k5*n*13/8
	SignatureSize5  = cTildeSize + l5*n*20/8 + omega75 + k5
)

// Encoding size constants (bytes per polynomial).
const (
	encodingSize3  = n * 3 / 8  // eta=2 packed
	encodingSize4  = n * 4 / 8  // eta=4 packed or 4-bit w1
	encodingSize6  = n * 6 / 8  // 6-bit w1 (mode 2)
	encodingSize10 = n * 10 / 8 // t1 packed
	encodingSize13 = n * 13 / 8 // t0 packed
	encodingSize18 = n * 18 / 8 // z for gamma1=2^17
	encodingSize20 = n * 20 / 8 // z for gamma1=2^19
)

// SignerOpts implements crypto.SignerOpts for Dilithium signing operations.
// Deterministic selects signing without consuming randomness; the zero
// value (and any other crypto.SignerOpts, including nil) selects the
// randomised variant.
type SignerOpts struct {
	Deterministic bool
}

// HashFunc returns 0: Dilithium signs messages directly, not digests.
func (opts *SignerOpts) HashFunc() crypto.Hash {
	return 0
}

// Compile-time interface assertions for crypto.Signer.
var (
	_ crypto.Signer = (*PrivateKey2)(nil)
	_ crypto.Signer = (*PrivateKey3)(nil)
	_ crypto.Signer = (*PrivateKey5)(nil)
)
