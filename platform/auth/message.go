package auth

import (
	"fmt"
	"strings"
)

const (
	actionHeader    = "OxfordETH FlarePoly Action"
	actionFooter    = "Sign this to prove wallet ownership for this action."
	challengeHeader = "OxfordETH FlarePoly Connect"
)

// BuildActionMessage returns the exact text a player signs for one action.
// Nonce must be the player's current nonce + 1.
func BuildActionMessage(game string, chainID int64, playerIndex int, action, params string, nonce uint64) string {
	var b strings.Builder
	b.WriteString(actionHeader + "\n")
	fmt.Fprintf(&b, "Game: %s\n", game)
	fmt.Fprintf(&b, "ChainId: %d\n", chainID)
	fmt.Fprintf(&b, "PlayerIndex: %d\n", playerIndex)
	fmt.Fprintf(&b, "Action: %s\n", action)
	fmt.Fprintf(&b, "Params: %s\n", params)
	fmt.Fprintf(&b, "Nonce: %d\n", nonce)
	b.WriteString(actionFooter)
	return b.String()
}

// BuildChallenge returns a connect-wallet challenge bound to a game, player and
// a one-time id.
func BuildChallenge(game string, chainID int64, playerIndex int, id string) string {
	return fmt.Sprintf("%s\nGame: %s\nChainId: %d\nPlayerIndex: %d\nChallenge: %s", challengeHeader, game, chainID, playerIndex, id)
}
