package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_哈希后可比对(t *testing.T) {
	b := Bcrypt{Cost: bcrypt.MinCost}
	h, err := b.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash err: %v", err)
	}
	if h == "s3cret-pass" || !strings.HasPrefix(h, "$2") {
		t.Fatalf("unexpected hash %q", h)
	}
	if !b.Compare(h, "s3cret-pass") {
		t.Fatalf("expected match")
	}
	if b.Compare(h, "s3cret-pasS") {
		t.Fatalf("wrong password should not match")
	}
	if b.Compare("not-a-hash", "s3cret-pass") {
		t.Fatalf("malformed hash should not match")
	}
}
