package dilithium

import "testing"

func TestPower2RoundRange(t *testing.T) {
	for _, r := range []fieldElement{0, 1, 4095, 4096, 4097, 8191, 8192, q - 1} {
		r1, r0 := power2Round(r)
		if uint32(r1) >= (q-1)/(1<<d)+2 {
			t.Errorf("power2Round(%d): r1 = %d out of expected range", r, r1)
		}
		// r0 must be centered: |r0| <= 2^(d-1)
		norm := infinityNorm(r0)
		if norm > 1<<(d-1) {
			t.Errorf("power2Round(%d): r0 = %d not centered (norm %d)", r, r0, norm)
		}
	}
}

func TestDecomposeAgreesWithHighBits(t *testing.T) {
	for _, gamma2 := range []uint32{gamma2QMinus1Div32, gamma2QMinus1Div88} {
		for _, r := range []fieldElement{0, 1, 1000, q / 2, q - 1} {
			r1, _ := decompose(r, gamma2)
			if r1 != highBits(r, gamma2) {
				t.Errorf("decompose(%d, %d) r1 = %d, want highBits = %d", r, gamma2, r1, highBits(r, gamma2))
			}
		}
	}
}

func TestUseHintZeroIsIdentity(t *testing.T) {
	for _, gamma2 := range []uint32{gamma2QMinus1Div32, gamma2QMinus1Div88} {
		for _, r := range []fieldElement{0, 1, 12345, q - 1} {
			r1, _ := decompose(r, gamma2)
			got := useHint(0, r, gamma2)
			if got != fieldElement(r1) {
				t.Errorf("useHint(0, %d, %d) = %d, want %d", r, gamma2, got, r1)
			}
		}
	}
}

func TestMakeHintDetectsBoundaryCrossing(t *testing.T) {
	// r chosen so that r and r+z fall in different HighBits buckets:
	// HighBits(gamma2) = 0 and HighBits(gamma2+1) = 1.
	gamma2 := uint32(gamma2QMinus1Div32)
	r := fieldElement(gamma2)
	z := fieldElement(1)
	if makeHint(z, r, gamma2) != 1 {
		t.Error("makeHint should flag a boundary crossing")
	}
	if makeHint(0, r, gamma2) != 0 {
		t.Error("makeHint(0, r, gamma2) should never flag a change")
	}
}

func TestInfinityNormSymmetry(t *testing.T) {
	for _, a := range []fieldElement{1, 100, q - 1, q - 100} {
		na := fieldSub(0, a)
		if infinityNorm(a) != infinityNorm(na) {
			t.Errorf("infinityNorm(%d) = %d != infinityNorm(-%d) = %d", a, infinityNorm(a), a, infinityNorm(na))
		}
	}
}

func TestCountOnesAndVectorNorm(t *testing.T) {
	var zero [n]fieldElement
	vecs := []ringElement{ringElement(zero), ringElement(zero)}
	if countOnes(vecs) != 0 {
		t.Error("countOnes on all-zero vectors should be 0")
	}
	if vectorInfinityNorm(vecs) != 0 {
		t.Error("vectorInfinityNorm on all-zero vectors should be 0")
	}

	vecs[0][3] = 5
	if countOnes(vecs) != 1 {
		t.Errorf("countOnes = %d, want 1", countOnes(vecs))
	}
	if vectorInfinityNorm(vecs) != 5 {
		t.Errorf("vectorInfinityNorm = %d, want 5", vectorInfinityNorm(vecs))
	}
}
