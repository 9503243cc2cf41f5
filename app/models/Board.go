package models

type TileKind string

const (
	TileStart        TileKind = "corner-start"
	TilePrison       TileKind = "corner-prison"
	TileSendToPrison TileKind = "corner-send-to-prison"
	TileNeutral      TileKind = "corner-neutral"
	TilePurchasable  TileKind = "purchasable"
	TileChance       TileKind = "chance"
	TileTax          TileKind = "tax"
	TileAction       TileKind = "action"
)

// Tile is one fixed position on the board. Price and RentOrFee are only
// meaningful for purchasable tiles (price, rent) and tax tiles (fee).
type Tile struct {
	Id        int      `json:"id"`
	Kind      TileKind `json:"kind"`
	Name      string   `json:"name"`
	Family    string   `json:"family,omitempty"`
	Price     int      `json:"price,omitempty"`
	RentOrFee int      `json:"rentOrFee,omitempty"`
}

func (t Tile) Purchasable() bool {
	return t.Kind == TilePurchasable
}

// Board is the ordered, immutable tile sequence. Tiles[i].Id == i.
type Board struct {
	Tiles []Tile `json:"tiles"`
}

func (b *Board) Len() int {
	return len(b.Tiles)
}

// Tile returns the tile with the given id, or false when id is off the board.
func (b *Board) Tile(id int) (Tile, bool) {
	if id < 0 || id >= len(b.Tiles) {
		return Tile{}, false
	}
	return b.Tiles[id], true
}

// First returns the id of the first tile of the given kind, or -1.
func (b *Board) First(kind TileKind) int {
	for _, t := range b.Tiles {
		if t.Kind == kind {
			return t.Id
		}
	}
	return -1
}

// ChanceCard is one entry of the weighted chance table.
type ChanceCard struct {
	Text   string `json:"text"`
	Delta  int    `json:"delta"` // positive credits, negative debits
	Weight int    `json:"weight"`
}
