package dilithium

import "testing"

func TestSampleNTTPolyDeterministicAndInRange(t *testing.T) {
	rho := make([]byte, 32)
	for i := range rho {
		rho[i] = byte(i)
	}

	a := sampleNTTPoly(rho, 1, 2)
	b := sampleNTTPoly(rho, 1, 2)
	if a != b {
		t.Error("sampleNTTPoly is not deterministic for a fixed (rho, s, r)")
	}

	c := sampleNTTPoly(rho, 1, 3)
	if a == c {
		t.Error("sampleNTTPoly produced identical output for different r byte (suspiciously low entropy)")
	}

	for i, v := range a {
		if uint32(v) >= q {
			t.Fatalf("sampleNTTPoly coefficient %d = %d out of range [0,q)", i, v)
		}
	}
}

func TestSampleBoundedPolyRange(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i * 3)
	}

	for _, eta := range []int{2, 4} {
		a := sampleBoundedPoly(seed, eta, 7)
		for i, v := range a {
			if infinityNorm(v) > uint32(eta) {
				t.Errorf("sampleBoundedPoly(eta=%d) coefficient %d has norm %d > eta", eta, i, infinityNorm(v))
			}
		}

		b := sampleBoundedPoly(seed, eta, 7)
		if a != b {
			t.Errorf("sampleBoundedPoly(eta=%d) is not deterministic for a fixed (seed, nonce)", eta)
		}
	}
}

func TestSampleChallengeHasTauNonzero(t *testing.T) {
	seed := make([]byte, cTildeSize)
	for i := range seed {
		seed[i] = byte(i * 7)
	}

	for _, tau := range []int{39, 49, 60} {
		c := sampleChallenge(seed, tau)
		count := 0
		for _, v := range c {
			if v != 0 {
				if v != 1 && v != q-1 {
					t.Errorf("challenge coefficient %d is neither 0, 1, nor -1", v)
				}
				count++
			}
		}
		if count != tau {
			t.Errorf("sampleChallenge(tau=%d): got %d non-zero coefficients, want %d", tau, count, tau)
		}
	}
}

func TestExpandMaskRangeAndDeterminism(t *testing.T) {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i)
	}

	for _, bits := range []int{17, 19} {
		gamma1 := uint32(1) << bits
		y := expandMask(seed, 5, bits)
		for i, v := range y {
			if infinityNorm(v) > gamma1 {
				t.Errorf("expandMask(gamma1Bits=%d) coefficient %d has norm %d > gamma1 %d", bits, i, infinityNorm(v), gamma1)
			}
		}

		y2 := expandMask(seed, 5, bits)
		if y != y2 {
			t.Errorf("expandMask(gamma1Bits=%d) is not deterministic for a fixed (seed, nonce)", bits)
		}

		y3 := expandMask(seed, 6, bits)
		if y == y3 {
			t.Errorf("expandMask(gamma1Bits=%d) produced identical output for different nonces", bits)
		}
	}
}
