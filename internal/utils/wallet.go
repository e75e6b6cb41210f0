package utils

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3" // Keccak-256 for the EIP-55 checksum
)

var walletRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// NormalizeWallet validates a wallet address and returns the lowercase form
// used for storage and lookup. All-lowercase and all-uppercase hex are
// accepted as-is; mixed-case input must carry a correct EIP-55 checksum.
func NormalizeWallet(addr string) (string, error) {
	if !walletRe.MatchString(addr) {
		return "", errors.New("invalid wallet address format")
	}
	body := addr[2:]
	if body != strings.ToLower(body) && body != strings.ToUpper(body) {
		if addr != ChecksumWallet(addr) {
			return "", errors.New("wallet address checksum mismatch")
		}
	}
	return "0x" + strings.ToLower(body), nil
}

// ChecksumWallet returns the EIP-55 checksummed form of a wallet address.
// The input must already match the address format.
func ChecksumWallet(addr string) string {
	body := strings.ToLower(strings.TrimPrefix(addr, "0x"))
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(body))
	sum := h.Sum(nil)
	out := []byte(body)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue // Digits are never uppercased
		}
		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			out[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(out)
}
