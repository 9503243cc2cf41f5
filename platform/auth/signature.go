package auth

import (
	"crypto/ecdsa"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrBadAddress      = errors.New("invalid address")
	ErrBadSignature    = errors.New("invalid signature")
	ErrSignerMismatch  = errors.New("signature does not recover to the claimed address")
	ErrNotConnected    = errors.New("player has no connected wallet")
	ErrAddressMismatch = errors.New("proof address does not match the connected wallet")
	ErrMessageMismatch = errors.New("signed message does not match the expected message")
)

// Verifier checks that signature was produced by address's key over message.
type Verifier interface {
	Verify(address, message, signature string) error
}

// EthVerifier verifies EIP-191 personal_sign signatures.
type EthVerifier struct{}

func (EthVerifier) Verify(address, message, signature string) error {
	if !common.IsHexAddress(address) {
		return ErrBadAddress
	}
	raw, err := hexutil.Decode(signature)
	if err != nil || len(raw) != crypto.SignatureLength {
		return ErrBadSignature
	}

	sig := make([]byte, len(raw))
	copy(sig, raw)
	// wallets emit v as 27/28
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return ErrBadSignature
	}
	if crypto.PubkeyToAddress(*pub) != common.HexToAddress(address) {
		return ErrSignerMismatch
	}
	return nil
}

// SignMessage produces a wallet-style (v = 27/28) personal_sign signature.
func SignMessage(key *ecdsa.PrivateKey, message string) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	if err != nil {
		return "", err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// AddressOf returns the checksummed address for key.
func AddressOf(key *ecdsa.PrivateKey) string {
	return crypto.PubkeyToAddress(key.PublicKey).Hex()
}

// SameAddress compares two hex addresses case-insensitively.
func SameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
