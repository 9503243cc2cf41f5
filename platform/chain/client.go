package chain

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/ethclient"
)

var ErrNoRPC = errors.New("FLARE_RPC_URL is not set")

// Dial connects to the JSON-RPC node backing verification and balance reads.
// The returned client satisfies ReceiptReader and ContractCaller.
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	if rpcURL == "" {
		return nil, ErrNoRPC
	}
	return ethclient.DialContext(ctx, rpcURL)
}
