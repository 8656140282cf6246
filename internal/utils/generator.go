package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	KeyLength = 7
	alphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateKey возвращает случайный ключ из KeyLength символов алфавита [a-zA-Z0-9].
// gonanoid читает crypto/rand и отбрасывает выходящие за алфавит значения,
// поэтому распределение символов равномерное.
func GenerateKey() (string, error) {
	return generateKey(KeyLength)
}

func generateKey(length int) (string, error) {
	return gonanoid.Generate(alphabet, length)
}

// IsValidKey проверяет, что строка может быть ключом: длина KeyLength, только символы алфавита
func IsValidKey(key string) bool {
	if len(key) != KeyLength {
		return false
	}

	for i := 0; i < len(key); i++ {
		if !isAlphanumeric(key[i]) {
			return false
		}
	}

	return true
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
