package wallet

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hypergate/hypergate/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	addrA = common.HexToAddress("0x1111111111111111111111111111111111111111")
	addrB = common.HexToAddress("0x2222222222222222222222222222222222222222")
	addrC = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func TestResolveSigners_Delegated(t *testing.T) {
	roles, err := ResolveSigners([]Wallet{
		{Address: addrA, Kind: KindExternal},
		{Address: addrB, Kind: KindEmbedded},
	})
	require.NoError(t, err)
	assert.Equal(t, TopologyDelegated, roles.Topology)
	assert.Equal(t, addrA, roles.Primary.Address)
	assert.Equal(t, addrB, roles.Delegate.Address)
}

func TestResolveSigners_SelfCustodial(t *testing.T) {
	roles, err := ResolveSigners([]Wallet{
		{Address: addrB, Kind: KindEmbedded},
	})
	require.NoError(t, err)
	assert.Equal(t, TopologySelfCustodial, roles.Topology)
	assert.Equal(t, addrB, roles.Delegate.Address)
	assert.Equal(t, common.Address{}, roles.Primary.Address)
}

func TestResolveSigners_Empty(t *testing.T) {
	_, err := ResolveSigners(nil)
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNoWallet, appErr.Type)
}

func TestResolveSigners_EOAOnly(t *testing.T) {
	// An EOA alone gives the gateway nothing to sign with.
	_, err := ResolveSigners([]Wallet{{Address: addrA, Kind: KindExternal}})
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNoWallet, appErr.Type)
}

func TestResolveSigners_OrderIndependent(t *testing.T) {
	forward := []Wallet{
		{Address: addrA, Kind: KindExternal},
		{Address: addrB, Kind: KindEmbedded},
		{Address: addrC, Kind: KindEmbedded},
	}
	reversed := []Wallet{forward[2], forward[1], forward[0]}

	a, err := ResolveSigners(forward)
	require.NoError(t, err)
	b, err := ResolveSigners(reversed)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, addrB, a.Delegate.Address, "lowest embedded address wins")
}

func TestLocalSigner_AddressAndSign(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	keyHex := common.Bytes2Hex(crypto.FromECDSA(key))

	s, err := NewLocalSigner("0x" + keyHex)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), s.Address())
}

func TestKeyringAdapter_MissingKey(t *testing.T) {
	a, err := NewKeyringAdapter()
	require.NoError(t, err)

	_, err = a.SignerFor(context.Background(), Wallet{Address: addrA, Kind: KindEmbedded})
	require.Error(t, err)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNoWallet, appErr.Type)
}
