package utils

import (
	"strings"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}

	if len(key) != KeyLength {
		t.Errorf("GenerateKey() length = %d, want %d", len(key), KeyLength)
	}

	for _, char := range key {
		if !strings.ContainsRune(alphabet, char) {
			t.Errorf("GenerateKey() contains invalid character: %c", char)
		}
	}
}

func TestGenerateKey_Invariants(t *testing.T) {
	const iterations = 10000

	for i := 0; i < iterations; i++ {
		key, err := GenerateKey()
		if err != nil {
			t.Fatalf("GenerateKey() error = %v", err)
		}

		if !IsValidKey(key) {
			t.Fatalf("GenerateKey() = %q, not a valid key", key)
		}
	}
}

func TestGenerateKey_Length(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"length 1", 1},
		{"length 4", 4},
		{"length 7", 7},
		{"length 12", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := generateKey(tt.length)
			if err != nil {
				t.Errorf("generateKey(%d) error = %v", tt.length, err)
				return
			}

			if len(key) != tt.length {
				t.Errorf("generateKey(%d) length = %d, want %d", tt.length, len(key), tt.length)
			}

			for _, char := range key {
				if !strings.ContainsRune(alphabet, char) {
					t.Errorf("generateKey(%d) contains invalid character: %c", tt.length, char)
				}
			}
		})
	}
}

func TestGenerateKeyUniqueness(t *testing.T) {
	generated := make(map[string]bool)
	iterations := 1000

	for i := 0; i < iterations; i++ {
		key, err := GenerateKey()
		if err != nil {
			t.Fatalf("GenerateKey() error = %v", err)
		}

		if generated[key] {
			t.Errorf("GenerateKey() generated duplicate: %s", key)
		}
		generated[key] = true
	}
}

func TestGenerateKey_UsesWholeAlphabet(t *testing.T) {
	seen := make(map[rune]bool)

	for i := 0; i < 2000; i++ {
		key, err := GenerateKey()
		if err != nil {
			t.Fatalf("GenerateKey() error = %v", err)
		}
		for _, char := range key {
			seen[char] = true
		}
	}

	// 14000 символов: вероятность не увидеть хотя бы один из 62 пренебрежимо мала
	if len(seen) != len(alphabet) {
		t.Errorf("GenerateKey() used %d distinct characters, want %d", len(seen), len(alphabet))
	}
}

func TestIsValidKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"aB3dE9z", true},
		{"0000000", true},
		{"abc", false},
		{"abcdefgh", false},
		{"abc-123", false},
		{"abc_123", false},
		{"stats12", true},
		{"", false},
		{"абвгдеж", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsValidKey(tt.key); got != tt.want {
				t.Errorf("IsValidKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
