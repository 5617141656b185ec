package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const keyCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// AuthorizationKeyLength is the length of the single-use token a sender must
// present to confirm a pending transaction.
const AuthorizationKeyLength = 5

// GenerateAuthorizationKey generates a short random alphanumeric token.
// Uniqueness among pending transactions is enforced by the database, not here.
func GenerateAuthorizationKey() string {
	return randomString(AuthorizationKeyLength)
}

// GenerateAccountNumber generates a 26-digit bill account number starting
// with 61.
func GenerateAccountNumber() string {
	var b strings.Builder
	b.WriteString("61")
	for i := 0; i < 24; i++ {
		num, _ := rand.Int(rand.Reader, big.NewInt(10))
		fmt.Fprintf(&b, "%d", num.Int64())
	}
	return b.String()
}

// ValidateAuthorizationKey validates the authorization key format.
func ValidateAuthorizationKey(key string) bool {
	if len(key) != AuthorizationKeyLength {
		return false
	}
	for _, c := range key {
		if !strings.ContainsRune(keyCharset, c) {
			return false
		}
	}
	return true
}

func randomString(length int) string {
	result := make([]byte, length)
	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(keyCharset))))
		result[i] = keyCharset[num.Int64()]
	}
	return string(result)
}
