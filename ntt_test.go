package dilithium

import "testing"

func TestNTTRoundTrip(t *testing.T) {
	var f ringElement
	for i := range f {
		f[i] = fieldElement((i * 37) % q)
	}

	transformed := ntt(f)
	back := invNTT(transformed)
	// invNTT leaves a Montgomery factor R on every coefficient; one
	// Montgomery reduction removes it.
	for i := range back {
		back[i] = fieldReduce(uint64(back[i]))
	}

	if back != f {
		t.Fatalf("invNTT(ntt(f)) != f\ngot:  %v\nwant: %v", back, f)
	}
}

func TestNTTIsAdditive(t *testing.T) {
	var a, b ringElement
	for i := range a {
		a[i] = fieldElement((i * 11) % q)
		b[i] = fieldElement((i * 23) % q)
	}

	sumThenTransform := ntt(polyAdd(a, b))
	transformThenSum := nttElement(polyAdd(ringElement(ntt(a)), ringElement(ntt(b))))

	if sumThenTransform != transformThenSum {
		t.Fatalf("ntt is not additive: ntt(a+b) != ntt(a)+ntt(b)")
	}
}
