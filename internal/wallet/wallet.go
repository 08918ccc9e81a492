package wallet

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hypergate/hypergate/internal/pkg/apperrors"
)

// Kind is the classification tag supplied by the wallet-connection layer.
type Kind string

const (
	// KindExternal marks an externally-owned account the user controls
	// directly; the gateway cannot sign with it on its own.
	KindExternal Kind = "eoa"
	// KindEmbedded marks a custodially-held key the gateway can sign with.
	KindEmbedded Kind = "embedded"
)

// Wallet is a connected wallet descriptor. The gateway never creates or
// destroys wallets, it only classifies them.
type Wallet struct {
	Address common.Address
	Kind    Kind
}

type Topology string

const (
	// TopologySelfCustodial: a single embedded key signs everything.
	TopologySelfCustodial Topology = "self_custodial"
	// TopologyDelegated: an EOA owns the account and the embedded key
	// signs trading actions as its approved agent.
	TopologyDelegated Topology = "delegated"
)

// SignerRoles is the resolved signer topology. Signing always goes through
// Delegate; Primary is set only under TopologyDelegated and is the account
// that must approve the delegate as its agent.
type SignerRoles struct {
	Topology Topology
	Primary  Wallet
	Delegate Wallet
}

// ResolveSigners classifies the connected wallet set by kind. The result is
// deterministic and independent of list order: when several wallets share a
// kind the lowest address wins.
func ResolveSigners(wallets []Wallet) (SignerRoles, error) {
	var eoa, embedded *Wallet
	for i := range wallets {
		w := wallets[i]
		switch w.Kind {
		case KindExternal:
			if eoa == nil || bytes.Compare(w.Address.Bytes(), eoa.Address.Bytes()) < 0 {
				eoa = &wallets[i]
			}
		case KindEmbedded:
			if embedded == nil || bytes.Compare(w.Address.Bytes(), embedded.Address.Bytes()) < 0 {
				embedded = &wallets[i]
			}
		}
	}

	switch {
	case eoa != nil && embedded != nil:
		return SignerRoles{
			Topology: TopologyDelegated,
			Primary:  *eoa,
			Delegate: *embedded,
		}, nil
	case embedded != nil:
		return SignerRoles{
			Topology: TopologySelfCustodial,
			Delegate: *embedded,
		}, nil
	default:
		// An EOA alone cannot sign server-side, so it resolves the same
		// as an empty set.
		return SignerRoles{}, apperrors.NewNoWallet("no custodial signing wallet connected")
	}
}

// Provider exposes the currently connected wallet descriptors.
type Provider interface {
	Wallets() []Wallet
}

// StaticProvider serves a fixed wallet set, built from configured keys.
type StaticProvider struct {
	wallets []Wallet
}

func NewStaticProvider(wallets []Wallet) *StaticProvider {
	return &StaticProvider{wallets: wallets}
}

func (p *StaticProvider) Wallets() []Wallet {
	return p.wallets
}
