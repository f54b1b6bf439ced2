package crypto

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := GenerateHash("Passw0rd!")
	if err != nil {
		t.Fatalf("GenerateHash failed: %v", err)
	}
	if hash == "Passw0rd!" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword("Passw0rd!", hash) {
		t.Error("expected password to validate against its own hash")
	}
	if CheckPassword("passw0rd!", hash) {
		t.Error("expected different password to fail validation")
	}
	if CheckPassword("", hash) {
		t.Error("expected empty password to fail validation")
	}
}

func TestPasswordHashIsSalted(t *testing.T) {
	h1, _ := GenerateHash("Passw0rd!")
	h2, _ := GenerateHash("Passw0rd!")
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}
