package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
)

const (
	ReasonInvalidReference = "invalid transaction reference"
	ReasonConsumed         = "transaction already consumed"
	ReasonNotFound         = "tx not found / not mined"
	ReasonFailed           = "tx failed"
	ReasonNoTransfer       = "no matching transfer found in tx"
	ReasonNetwork          = "ambiguous network result"
)

// ReceiptReader is the subset of ethclient.Client the verifier needs.
type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// TokenVerifier confirms ERC-20 Transfer events emitted by Token.
type TokenVerifier struct {
	Client ReceiptReader
	Token  common.Address
	Refs   ReferenceStore
	Log    *logrus.Entry
}

func NewTokenVerifier(client ReceiptReader, token string, refs ReferenceStore) *TokenVerifier {
	if refs == nil {
		refs = NewMemoryRefs()
	}
	return &TokenVerifier{
		Client: client,
		Token:  common.HexToAddress(token),
		Refs:   refs,
		Log:    logrus.WithField("component", "chain"),
	}
}

// NormalizeReference lowercases a transaction hash and checks its shape.
func NormalizeReference(ref string) (string, bool) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if !strings.HasPrefix(ref, "0x") || len(ref) != 2+2*common.HashLength {
		return "", false
	}
	for _, c := range ref[2:] {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return "", false
		}
	}
	return ref, true
}

// VerifyTransfer reports whether req.Reference is a mined, successful tx with
// enough confirmations that moved at least req.MinAmount of Token from req.From
// to req.To. A positive result claims the reference so it cannot be reused.
func (v *TokenVerifier) VerifyTransfer(ctx context.Context, req models.TransferRequest) (models.TransferResult, error) {
	ref, ok := NormalizeReference(req.Reference)
	if !ok {
		return fail(ReasonInvalidReference), nil
	}

	used, err := v.Refs.Consumed(ref)
	if err != nil {
		return fail(ReasonNetwork), err
	}
	if used {
		return fail(ReasonConsumed), nil
	}

	receipt, err := v.Client.TransactionReceipt(ctx, common.HexToHash(ref))
	if errors.Is(err, ethereum.NotFound) || (err == nil && receipt == nil) {
		return fail(ReasonNotFound), nil
	}
	if err != nil {
		return fail(ReasonNetwork), err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fail(ReasonFailed), nil
	}

	latest, err := v.Client.BlockNumber(ctx)
	if err != nil {
		return fail(ReasonNetwork), err
	}
	conf := confirmations(latest, receipt.BlockNumber)
	if conf < req.MinConfirmations {
		return fail(fmt.Sprintf("not enough confirmations (%d/%d)", conf, req.MinConfirmations)), nil
	}

	min := req.MinAmount
	if min == nil {
		min = new(big.Int)
	}
	from, to := common.HexToAddress(req.From), common.HexToAddress(req.To)
	for _, l := range receipt.Logs {
		amount, ok := v.matchTransfer(l, from, to)
		if !ok || amount.Cmp(min) < 0 {
			continue
		}
		claimed, err := v.Refs.Claim(ref)
		if err != nil {
			return fail(ReasonNetwork), err
		}
		if !claimed {
			return fail(ReasonConsumed), nil
		}
		v.Log.WithFields(logrus.Fields{"tx": ref, "amount": amount.String()}).Info("transfer verified")
		return models.TransferResult{OK: true, Reason: "ok"}, nil
	}
	return fail(ReasonNoTransfer), nil
}

func (v *TokenVerifier) matchTransfer(l *types.Log, from, to common.Address) (*big.Int, bool) {
	if l == nil || l.Address != v.Token || len(l.Topics) != 3 || l.Topics[0] != transferTopic {
		return nil, false
	}
	if common.BytesToAddress(l.Topics[1].Bytes()) != from || common.BytesToAddress(l.Topics[2].Bytes()) != to {
		return nil, false
	}
	if len(l.Data) < 32 {
		return nil, false
	}
	return new(big.Int).SetBytes(l.Data[:32]), true
}

func confirmations(latest uint64, mined *big.Int) uint64 {
	if mined == nil || !mined.IsUint64() || mined.Uint64() > latest {
		return 0
	}
	return latest - mined.Uint64() + 1
}

func fail(reason string) models.TransferResult {
	return models.TransferResult{Reason: reason}
}
