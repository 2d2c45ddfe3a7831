package uniswap

import (
	"regexp"
	"strings"
)

var walletAddressPattern = regexp.MustCompile(`0x[a-fA-F0-9]{40}`)

// ExtractWalletAddress returns the first Ethereum address shaped substring of text.
// Checksums are not verified and the original casing is preserved.
func ExtractWalletAddress(text string) (string, bool) {
	match := walletAddressPattern.FindString(text)
	if match == "" {
		return "", false
	}
	return match, true
}

func normalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
