package game

import (
	"context"
	"strings"

	"github.com/DedS3t/flarepoly-backend/app/models"
)

// open starts phase one: nothing but settle is accepted until ps is confirmed.
func (t *table) open(ps *models.PendingSettlement) {
	t.pending = ps
	e := t.event(models.EventSettlementOpened, ps.Buyer)
	e.Counterparty = ps.Seller
	e.Tile = ps.TileId
	e.Amount = ps.Price
	e.Text = string(ps.Kind)
	e.Ref = ps.Amount.String()
	t.record(e)
}

// settle is phase two. The deferred mutation is applied only after the
// verifier confirms the transfer; otherwise the pending settlement stays open.
func (t *table) settle(ctx context.Context, a Settle) error {
	ps := t.pending
	if ps == nil {
		return reject(ErrValidation, "no settlement is pending")
	}
	ref := strings.ToLower(strings.TrimSpace(a.TxHash))
	if ref == "" {
		return reject(ErrValidation, "missing transaction hash")
	}
	if t.verifier == nil {
		return reject(ErrVerification, "no transfer verifier configured")
	}

	// An in-flight verification is never cancelled by the caller going away.
	vctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.cfg.VerifyTimeout)
	defer cancel()
	res, err := t.verifier.VerifyTransfer(vctx, models.TransferRequest{
		Reference:        ref,
		From:             ps.FromAddress,
		To:               ps.ToAddress,
		MinAmount:        ps.Amount,
		MinConfirmations: t.cfg.MinConfirmations,
	})
	if err != nil {
		if res.Reason != "" {
			return &ActionError{Kind: ErrVerification, Reason: res.Reason, Err: err}
		}
		return wrap(ErrVerification, err)
	}
	if !res.OK {
		return reject(ErrVerification, "%s", res.Reason)
	}

	switch ps.Kind {
	case models.SettleBuy:
		t.ownership[ps.TileId] = ps.Buyer
		t.prompt = nil
		t.recordBought(ps.Buyer, ps.TileId, ps.Price)
	case models.SettleTrade:
		t.transfer(ps.Seller, ps.Buyer, ps.TileId, ps.Price)
		t.removeOffer(ps.OfferId)
		t.recordTraded(ps.Seller, ps.Buyer, ps.TileId, ps.Price)
	}
	t.pending = nil
	e := t.event(models.EventSettled, ps.Buyer)
	e.Tile = ps.TileId
	e.Ref = ref
	t.record(e)

	t.checkBankruptcy()
	t.advanceTurn()
	return nil
}
