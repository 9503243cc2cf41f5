package auth

import (
	"fmt"

	"github.com/DedS3t/flarepoly-backend/app/models"
)

// Gate authenticates signed actions against a player's connected wallet and
// nonce. It never mutates the player; callers bump the nonce once the action
// is accepted.
type Gate struct {
	Verifier Verifier
	ChainID  int64
}

func NewGate(v Verifier, chainID int64) *Gate {
	if v == nil {
		v = EthVerifier{}
	}
	return &Gate{Verifier: v, ChainID: chainID}
}

// ActionMessage is the message p must sign for its next action.
func (g *Gate) ActionMessage(game string, p *models.Player, action, params string) string {
	return BuildActionMessage(game, g.ChainID, p.Index, action, params, p.Nonce+1)
}

func (g *Gate) CheckAction(game string, p *models.Player, action, params string, proof models.SigProof) error {
	if !p.Connected() {
		return ErrNotConnected
	}
	if !SameAddress(proof.Address, p.Address) {
		return ErrAddressMismatch
	}
	if proof.Message != g.ActionMessage(game, p, action, params) {
		return fmt.Errorf("%w (expected nonce %d)", ErrMessageMismatch, p.Nonce+1)
	}
	return g.Verifier.Verify(proof.Address, proof.Message, proof.Signature)
}

// CheckConnect verifies a wallet signature over an issued challenge. No nonce
// is involved.
func (g *Gate) CheckConnect(proof models.SigProof, expected string) error {
	if expected == "" || proof.Message != expected {
		return ErrMessageMismatch
	}
	return g.Verifier.Verify(proof.Address, proof.Message, proof.Signature)
}
