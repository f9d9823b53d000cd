package dilithium

import "testing"

func TestPackT1RoundTrip(t *testing.T) {
	var f ringElement
	for i := range f {
		f[i] = fieldElement(i % (1 << 10))
	}
	got := unpackT1(packT1(f))
	if got != f {
		t.Error("packT1/unpackT1 round trip failed")
	}
}

func TestPackT0RoundTrip(t *testing.T) {
	var f ringElement
	const center = 1 << 12
	for i := range f {
		f[i] = fieldSub(center, fieldElement(i%(1<<13)))
	}
	got := unpackT0(packT0(f))
	if got != f {
		t.Error("packT0/unpackT0 round trip failed")
	}
}

func TestPackEta2RoundTrip(t *testing.T) {
	var f ringElement
	for i := range f {
		f[i] = fieldSub(2, fieldElement(i%5))
	}
	got, err := unpackEta2(packEta2(f))
	if err != nil {
		t.Fatalf("unpackEta2 returned error: %v", err)
	}
	if got != f {
		t.Error("packEta2/unpackEta2 round trip failed")
	}
}

func TestUnpackEta2RejectsInvalid(t *testing.T) {
	b := make([]byte, encodingSize3)
	// First 3-bit group set to 7: outside the valid [0,4] encoded range.
	b[0] = 0x07
	if _, err := unpackEta2(b); err == nil {
		t.Error("unpackEta2 should reject an out-of-range encoding")
	}
}

func TestPackEta4RoundTrip(t *testing.T) {
	var f ringElement
	for i := range f {
		f[i] = fieldSub(4, fieldElement(i%9))
	}
	got, err := unpackEta4(packEta4(f))
	if err != nil {
		t.Fatalf("unpackEta4 returned error: %v", err)
	}
	if got != f {
		t.Error("packEta4/unpackEta4 round trip failed")
	}
}

func TestUnpackEta4RejectsInvalid(t *testing.T) {
	b := make([]byte, encodingSize4)
	b[0] = 0x0F // nibble value 15, outside the valid [0,8] range
	if _, err := unpackEta4(b); err == nil {
		t.Error("unpackEta4 should reject an out-of-range encoding")
	}
}

func TestPackZ17RoundTrip(t *testing.T) {
	var f ringElement
	const gamma1 = 1 << 17
	for i := range f {
		f[i] = fieldSub(gamma1, fieldElement(i%(1<<18)))
	}
	got := unpackZ17Sig(packZ17(f))
	if got != f {
		t.Error("packZ17/unpackZ17Sig round trip failed")
	}
}

func TestPackZ19RoundTrip(t *testing.T) {
	var f ringElement
	const gamma1 = 1 << 19
	for i := range f {
		f[i] = fieldSub(gamma1, fieldElement(i%(1<<20)))
	}
	got := unpackZ19Sig(packZ19(f))
	if got != f {
		t.Error("packZ19/unpackZ19Sig round trip failed")
	}
}

func TestPackHintRoundTrip(t *testing.T) {
	const k, omega = 4, 80
	hints := make([]ringElement, k)
	hints[0][3] = 1
	hints[0][200] = 1
	hints[2][0] = 1
	hints[3][255] = 1

	packed := packHint(hints, omega)

	got := make([]ringElement, k)
	if !unpackHint(packed, got, omega) {
		t.Fatal("unpackHint rejected a well-formed hint encoding")
	}
	for i := range hints {
		if got[i] != hints[i] {
			t.Errorf("hint vector %d mismatch: got %v, want %v", i, got[i], hints[i])
		}
	}
}

func TestUnpackHintRejectsNonMonotonic(t *testing.T) {
	const k, omega = 2, 10
	// Two indices for polynomial 0, deliberately out of increasing order.
	b := make([]byte, omega+k)
	b[0] = 5
	b[1] = 2
	b[omega] = 2 // polynomial 0 claims 2 set positions
	b[omega+1] = 2

	got := make([]ringElement, k)
	if unpackHint(b, got, omega) {
		t.Error("unpackHint should reject non-monotonic hint indices (strong unforgeability)")
	}
}

func TestUnpackHintRejectsNonZeroTrailer(t *testing.T) {
	const k, omega = 1, 4
	b := make([]byte, omega+k)
	b[0] = 1
	b[omega] = 1 // only 1 of 4 slots used
	b[2] = 0xFF  // trailing byte should be zero

	got := make([]ringElement, k)
	if unpackHint(b, got, omega) {
		t.Error("unpackHint should reject a non-zero trailing byte")
	}
}
