package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/hypergate/hypergate/internal/pkg/apperrors"
)

// Signer signs EIP-712 typed data on behalf of a single wallet.
type Signer interface {
	Address() common.Address
	SignTypedData(typed apitypes.TypedData) ([]byte, error)
}

// Adapter yields a signer handle for a wallet descriptor. Yielding can fail
// when the wallet is disconnected or the user declines the request.
type Adapter interface {
	SignerFor(ctx context.Context, w Wallet) (Signer, error)
}

// LocalSigner signs with an in-process private key.
type LocalSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewLocalSigner parses a hex-encoded private key, with or without the 0x
// prefix.
func NewLocalSigner(privateKeyHex string) (*LocalSigner, error) {
	keyHex := strings.TrimPrefix(privateKeyHex, "0x")
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &LocalSigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (s *LocalSigner) Address() common.Address {
	return s.address
}

// SignTypedData hashes the typed data per EIP-712 and signs the digest.
// The recovery byte is shifted to the Ethereum convention (27/28).
func (s *LocalSigner) SignTypedData(typed apitypes.TypedData) ([]byte, error) {
	digest, _, err := apitypes.TypedDataAndHash(typed)
	if err != nil {
		return nil, fmt.Errorf("failed to hash typed data: %w", err)
	}
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign digest: %w", err)
	}
	sig[64] += 27
	return sig, nil
}

// KeyringAdapter resolves signers from a fixed set of local keys.
type KeyringAdapter struct {
	signers map[common.Address]*LocalSigner
}

func NewKeyringAdapter(keys ...string) (*KeyringAdapter, error) {
	a := &KeyringAdapter{signers: make(map[common.Address]*LocalSigner)}
	for _, k := range keys {
		if k == "" {
			continue
		}
		s, err := NewLocalSigner(k)
		if err != nil {
			return nil, err
		}
		a.signers[s.Address()] = s
	}
	return a, nil
}

func (a *KeyringAdapter) SignerFor(_ context.Context, w Wallet) (Signer, error) {
	s, ok := a.signers[w.Address]
	if !ok {
		return nil, apperrors.NewNoWallet(fmt.Sprintf("no key loaded for wallet %s", w.Address.Hex()))
	}
	return s, nil
}
