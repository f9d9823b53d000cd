package kat

import (
	"bytes"
	"testing"
)

// This is not a real NIST KAT fixture — it is a small synthetic vector
// exercising the .rsp round-trip (Read after Write reproduces the input).
const sampleRSP = `count = 0
seed = 000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F
mlen = 33
msg = 48656C6C6F2C20776F726C6421486F77617265796F75746F6461793F3F3F3F3F3F
pk = AABB
sk = CCDD
smlen = 2
sm = EEFF

count = 1
seed = 202122232425262728292A2B2C2D2E2F303132333435363738393A3B3C3D3E3F
mlen = 0
msg =
pk = 1122
sk = 3344
smlen = 0
sm =
`

func TestReadWriteRoundTrip(t *testing.T) {
	vectors, err := Read(bytes.NewReader([]byte(sampleRSP)))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vectors))
	}

	if vectors[0].Count != 0 || vectors[1].Count != 1 {
		t.Fatalf("unexpected counts: %+v", vectors)
	}
	if len(vectors[0].Seed) != 32 {
		t.Fatalf("seed length = %d, want 32", len(vectors[0].Seed))
	}
	if vectors[0].MLen != 33 || len(vectors[0].Msg) != 33 {
		t.Fatalf("mlen/msg mismatch: mlen=%d len(msg)=%d", vectors[0].MLen, len(vectors[0].Msg))
	}
	if vectors[1].MLen != 0 || len(vectors[1].Msg) != 0 {
		t.Fatalf("expected empty message for vector 1, got %+v", vectors[1])
	}

	var buf bytes.Buffer
	if err := Write(&buf, vectors); err != nil {
		t.Fatalf("Write: %v", err)
	}

	roundTripped, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read after Write: %v", err)
	}
	if len(roundTripped) != len(vectors) {
		t.Fatalf("round trip produced %d vectors, want %d", len(roundTripped), len(vectors))
	}
	for i := range vectors {
		if !bytes.Equal(roundTripped[i].Seed, vectors[i].Seed) {
			t.Errorf("vector %d: seed mismatch after round trip", i)
		}
		if !bytes.Equal(roundTripped[i].SM, vectors[i].SM) {
			t.Errorf("vector %d: sm mismatch after round trip", i)
		}
	}
}

func TestReadEmpty(t *testing.T) {
	vectors, err := Read(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(vectors) != 0 {
		t.Fatalf("got %d vectors from empty input, want 0", len(vectors))
	}
}
