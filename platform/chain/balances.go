package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// TokenBalances reads ERC-20 balances. Results are for display only.
type TokenBalances struct {
	Client ContractCaller
	Token  common.Address
}

func NewTokenBalances(client ContractCaller, token string) *TokenBalances {
	return &TokenBalances{Client: client, Token: common.HexToAddress(token)}
}

func (b *TokenBalances) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, ErrBadAddress
	}
	data := make([]byte, 0, 4+32)
	data = append(data, balanceOfSelector...)
	data = append(data, common.LeftPadBytes(common.HexToAddress(address).Bytes(), 32)...)

	out, err := b.Client.CallContract(ctx, ethereum.CallMsg{To: &b.Token, Data: data}, nil)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(out), nil
}
