package secrets_test

import (
	"errors"
	"testing"

	"github.com/pupperworks/pupper/pkg/secrets"
)

func newCipher(t *testing.T) *secrets.Cipher {
	t.Helper()

	key, err := secrets.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}

	c, err := secrets.NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher error: %v", err)
	}
	return c
}

func TestCipherRoundTrip(t *testing.T) {
	c := newCipher(t)

	tests := []string{"Biscuit", "", "a name with spaces", "ünïcode 🐕"}
	for _, plaintext := range tests {
		sealed, err := c.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q) error: %v", plaintext, err)
		}
		if sealed == plaintext && plaintext != "" {
			t.Errorf("Encrypt(%q) returned plaintext", plaintext)
		}

		opened, err := c.Decrypt(sealed)
		if err != nil {
			t.Fatalf("Decrypt error: %v", err)
		}
		if opened != plaintext {
			t.Errorf("Decrypt = %q, want %q", opened, plaintext)
		}
	}
}

func TestCipherNonceUniqueness(t *testing.T) {
	c := newCipher(t)

	first, err := c.Encrypt("Biscuit")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	second, err := c.Encrypt("Biscuit")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if first == second {
		t.Error("two encryptions of the same plaintext produced identical ciphertexts")
	}
}

func TestCipherWrongKey(t *testing.T) {
	sealed, err := newCipher(t).Encrypt("Biscuit")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if _, err := newCipher(t).Decrypt(sealed); !errors.Is(err, secrets.ErrDecryptFailed) {
		t.Errorf("Decrypt with wrong key: err = %v, want ErrDecryptFailed", err)
	}
}

func TestCipherTamperedCiphertext(t *testing.T) {
	c := newCipher(t)

	if _, err := c.Decrypt("bm90IGEgcmVhbCBjaXBoZXJ0ZXh0IGF0IGFsbCBidXQgbG9uZyBlbm91Z2g="); !errors.Is(err, secrets.ErrDecryptFailed) {
		t.Errorf("Decrypt tampered: err = %v, want ErrDecryptFailed", err)
	}
}

func TestNewCipherRejectsBadKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"not base64", "***"},
		{"too short", "c2hvcnQ="},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := secrets.NewCipher(tt.key); err == nil {
				t.Errorf("NewCipher(%q) expected error", tt.key)
			}
		})
	}
}
