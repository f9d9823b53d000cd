package dilithium

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestGenerateKey2(t *testing.T) {
	key, err := GenerateKey2(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey2 failed: %v", err)
	}
	if key == nil {
		t.Fatal("GenerateKey2 returned nil key")
	}
}

func TestGenerateKey3(t *testing.T) {
	key, err := GenerateKey3(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey3 failed: %v", err)
	}
	if key == nil {
		t.Fatal("GenerateKey3 returned nil key")
	}
}

func TestGenerateKey5(t *testing.T) {
	key, err := GenerateKey5(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey5 failed: %v", err)
	}
	if key == nil {
		t.Fatal("GenerateKey5 returned nil key")
	}
}

func TestSignVerify2(t *testing.T) {
	key, err := GenerateKey2(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey2 failed: %v", err)
	}

	message := []byte("hello, world!")
	sig, err := key.Sign(rand.Reader, message)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(sig) != SignatureSize2 {
		t.Errorf("signature size: got %d, want %d", len(sig), SignatureSize2)
	}

	pk := key.PublicKey()
	if err := pk.Verify(sig, message); err != nil {
		t.Errorf("Verify returned error for valid signature: %v", err)
	}
	if err := pk.Verify(sig, []byte("wrong message")); err == nil {
		t.Error("Verify succeeded for wrong message")
	}

	badSig := make([]byte, len(sig))
	copy(badSig, sig)
	badSig[0] ^= 0xFF
	if err := pk.Verify(badSig, message); err == nil {
		t.Error("Verify succeeded for corrupted signature")
	}
}

func TestSignVerify3(t *testing.T) {
	key, err := GenerateKey3(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey3 failed: %v", err)
	}

	message := []byte("hello, world!")
	sig, err := key.Sign(rand.Reader, message)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(sig) != SignatureSize3 {
		t.Errorf("signature size: got %d, want %d", len(sig), SignatureSize3)
	}

	pk := key.PublicKey()
	if err := pk.Verify(sig, message); err != nil {
		t.Errorf("Verify returned error for valid signature: %v", err)
	}
	if err := pk.Verify(sig, []byte("wrong message")); err == nil {
		t.Error("Verify succeeded for wrong message")
	}

	badSig := make([]byte, len(sig))
	copy(badSig, sig)
	badSig[0] ^= 0xFF
	if err := pk.Verify(badSig, message); err == nil {
		t.Error("Verify succeeded for corrupted signature")
	}
}

func TestSignVerify5(t *testing.T) {
	key, err := GenerateKey5(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey5 failed: %v", err)
	}

	message := []byte("hello, world!")
	sig, err := key.Sign(rand.Reader, message)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if len(sig) != SignatureSize5 {
		t.Errorf("signature size: got %d, want %d", len(sig), SignatureSize5)
	}

	pk := key.PublicKey()
	if err := pk.Verify(sig, message); err != nil {
		t.Errorf("Verify returned error for valid signature: %v", err)
	}
	if err := pk.Verify(sig, []byte("wrong message")); err == nil {
		t.Error("Verify succeeded for wrong message")
	}
}

func TestSignDeterministicReproducible(t *testing.T) {
	key, err := GenerateKey3(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey3 failed: %v", err)
	}

	message := []byte("deterministic signing should be reproducible")
	sig1, err := key.SignDeterministic(message)
	if err != nil {
		t.Fatalf("SignDeterministic failed: %v", err)
	}
	sig2, err := key.SignDeterministic(message)
	if err != nil {
		t.Fatalf("SignDeterministic failed: %v", err)
	}
	if !bytes.Equal(sig1, sig2) {
		t.Error("SignDeterministic produced different signatures for the same message")
	}

	pk := key.PublicKey()
	if err := pk.Verify(sig1, message); err != nil {
		t.Errorf("Verify failed on deterministic signature: %v", err)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	key, err := GenerateKey3(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey3 failed: %v", err)
	}

	skBytes := key.PrivateKeyBytes()
	sk, err := NewPrivateKey3(skBytes)
	if err != nil {
		t.Fatalf("NewPrivateKey3 failed: %v", err)
	}

	pkBytes := key.PublicKey().Bytes()
	pk, err := NewPublicKey3(pkBytes)
	if err != nil {
		t.Fatalf("NewPublicKey3 failed: %v", err)
	}

	message := []byte("round trip check")
	sig, err := sk.Sign(rand.Reader, message, nil)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if err := pk.Verify(sig, message); err != nil {
		t.Errorf("Verify failed on round-tripped keys: %v", err)
	}
}

func TestCryptoSignerInterface(t *testing.T) {
	key, err := GenerateKey3(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey3 failed: %v", err)
	}

	var signer = &key.PrivateKey3
	pub := signer.Public()
	if pub == nil {
		t.Fatal("Public() returned nil")
	}

	sig, err := signer.Sign(rand.Reader, []byte("via crypto.Signer"), &SignerOpts{Deterministic: true})
	if err != nil {
		t.Fatalf("Sign via crypto.Signer failed: %v", err)
	}

	pk, ok := pub.(*PublicKey3)
	if !ok {
		t.Fatalf("Public() returned %T, want *PublicKey3", pub)
	}
	if err := pk.Verify(sig, []byte("via crypto.Signer")); err != nil {
		t.Errorf("Verify failed on crypto.Signer-produced signature: %v", err)
	}
}

func TestVerifyRejectsWrongSize(t *testing.T) {
	key, err := GenerateKey2(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey2 failed: %v", err)
	}
	pk := key.PublicKey()
	if err := pk.Verify([]byte{1, 2, 3}, []byte("msg")); err != ErrInput {
		t.Errorf("Verify on truncated signature = %v, want ErrInput", err)
	}
}

func TestNewPrivateKeyRejectsWrongSize(t *testing.T) {
	if _, err := NewPrivateKey3([]byte{0, 1, 2}); err != ErrInput {
		t.Errorf("NewPrivateKey3 on short input = %v, want ErrInput", err)
	}
}
