package credentials

import (
	"strings"
	"testing"
)

// cheapParams keeps argon2 affordable in tests.
var cheapParams = Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 16, SaltLen: 8}

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(cheapParams)

	hash, err := h.Hash("Hola123@")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash encoding: %s", hash)
	}
	if !h.Verify(hash, "Hola123@") {
		t.Fatalf("Verify failed for the paired password")
	}
	if h.Verify(hash, "Hola123!") {
		t.Fatalf("Verify succeeded for a different password")
	}
}

// Random salting: two hashes of the same input differ, yet both verify.
func TestHasher_NonDeterministic(t *testing.T) {
	h := NewHasher(cheapParams)

	first, err := h.Hash("S3cret!pass")
	if err != nil {
		t.Fatalf("first Hash: %v", err)
	}
	second, err := h.Hash("S3cret!pass")
	if err != nil {
		t.Fatalf("second Hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same input")
	}
	if !h.Verify(first, "S3cret!pass") || !h.Verify(second, "S3cret!pass") {
		t.Fatalf("both hashes must verify against the original password")
	}
}

func TestHasher_VerifyMalformed(t *testing.T) {
	h := NewHasher(cheapParams)

	malformed := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=8192,t=1,p=1$short",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$!!!",
	}
	for _, enc := range malformed {
		if h.Verify(enc, "whatever") {
			t.Errorf("Verify(%q) = true, want false", enc)
		}
	}
}

// Parameters are read back from the encoding, so a hash produced with one
// cost profile still verifies under a hasher configured with another.
func TestHasher_VerifyAcrossParams(t *testing.T) {
	producer := NewHasher(cheapParams)
	hash, err := producer.Hash("Par4m!check")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	consumer := NewHasher(Argon2Params{Time: 2, Memory: 16 * 1024, Threads: 2, KeyLen: 32, SaltLen: 16})
	if !consumer.Verify(hash, "Par4m!check") {
		t.Fatalf("hash did not verify under a differently configured hasher")
	}
}

func TestNewHasher_ZeroValueDefaults(t *testing.T) {
	h := NewHasher(Argon2Params{})
	def := DefaultArgon2Params()
	if h.params != def {
		t.Fatalf("zero params = %+v, want defaults %+v", h.params, def)
	}
}
