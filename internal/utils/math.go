package utils

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
)

// SecureRandomInt returns a random integer between min and max (inclusive) using crypto/rand
func SecureRandomInt(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("min cannot be greater than max")
	}
	diff := big.NewInt(int64(max - min + 1))
	n, err := crand.Int(crand.Reader, diff)
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + min, nil
}

// SecureRandomString draws n characters uniformly from alphabet
func SecureRandomString(alphabet string, n int) (string, error) {
	if alphabet == "" {
		return "", fmt.Errorf("alphabet cannot be empty")
	}
	out := make([]byte, n)
	for i := range out {
		idx, err := SecureRandomInt(0, len(alphabet)-1)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx]
	}
	return string(out), nil
}
