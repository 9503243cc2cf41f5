package models

// SigProof is a wallet signature over Message, claimed to come from Address.
type SigProof struct {
	Address   string `json:"address"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

type ConnectWalletDto struct {
	PlayerIndex int      `json:"playerIndex"`
	Proof       SigProof `json:"proof"`
}

type SignedActionDto struct {
	Proof SigProof `json:"proof"`
}

type SignedBuyDto struct {
	Proof  SigProof `json:"proof"`
	TileId *int     `json:"tileId"`
}

type SignedOfferDto struct {
	Proof  SigProof  `json:"proof"`
	Type   OfferKind `json:"type"`
	To     int       `json:"to"`
	TileId int       `json:"tileId"`
	Price  int       `json:"priceFXRP"`
}

type SignedSettleDto struct {
	Proof  SigProof `json:"proof"`
	TxHash string   `json:"txHash"`
}

type ActionMessageDto struct {
	PlayerIndex int    `query:"playerIndex"`
	Action      string `query:"action"`
	Params      string `query:"params"`
}

type ConnectMessageDto struct {
	PlayerIndex int `query:"playerIndex"`
}
