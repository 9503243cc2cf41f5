package controllers

import (
	"errors"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/DedS3t/flarepoly-backend/pkg"
	"github.com/DedS3t/flarepoly-backend/platform/game"
	"github.com/DedS3t/flarepoly-backend/platform/queries"
	"github.com/gofiber/fiber/v2"
)

func (a *API) CreateGame(c *fiber.Ctx) error {
	dto := new(models.GameCreateDto)
	if err := c.BodyParser(dto); err != nil {
		return a.badRequest(c, err)
	}

	id := pkg.RandString(8)
	s, err := a.Games.Create(id)
	if err != nil {
		return a.fail(c, err)
	}
	if a.DB != nil {
		name := dto.Name
		if name == "" {
			name = id
		}
		record := &models.Game{Id: id, Name: name, Status: models.GameWaiting}
		if err := queries.CreateGame(c.UserContext(), record, a.DB); err != nil {
			a.Games.Discard(s.ID())
			return a.fail(c, err)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

func (a *API) GetAllAvailGames(c *fiber.Ctx) error {
	if a.DB != nil {
		games, err := queries.GetGamesByStatus(c.UserContext(), models.GameWaiting, a.DB)
		if err != nil {
			return a.fail(c, err)
		}
		return c.JSON(games)
	}

	games := []models.Game{}
	for _, id := range a.Games.IDs() {
		s, err := a.Games.Get(id)
		if err != nil {
			continue
		}
		snap, err := s.Snapshot(c.UserContext())
		if err != nil {
			continue
		}
		if status := queries.StatusOf(snap); status == models.GameWaiting {
			games = append(games, models.Game{Id: id, Name: id, Status: status})
		}
	}
	return c.JSON(games)
}

func (a *API) VerifyGame(c *fiber.Ctx) error {
	dto := new(models.VerifyGameDto)
	if err := c.QueryParser(dto); err != nil {
		return a.badRequest(c, err)
	}
	if _, err := a.Games.Get(dto.Code); err == nil {
		return c.JSON(fiber.Map{"status": true})
	}
	if a.DB != nil {
		return c.JSON(fiber.Map{"status": queries.VerifyGame(c.UserContext(), dto.Code, a.DB)})
	}
	return c.JSON(fiber.Map{"status": false})
}

// GetState serves the live snapshot, or the last stored one for games that
// are no longer running in this process.
func (a *API) GetState(c *fiber.Ctx) error {
	s, err := a.session(c)
	if errors.Is(err, game.ErrGameNotFound) {
		snap, aerr := a.archived(c.UserContext(), gameID(c))
		if aerr != nil {
			return a.fail(c, err)
		}
		return c.JSON(snap)
	}
	if err != nil {
		return a.fail(c, err)
	}
	snap, err := s.Snapshot(c.UserContext())
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(snap)
}

func (a *API) apply(c *fiber.Ctx, proof models.SigProof, action game.Action) error {
	s, err := a.session(c)
	if err != nil {
		return a.fail(c, err)
	}
	snap, err := s.Apply(c.UserContext(), proof, action)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(snap)
}

func (a *API) Roll(c *fiber.Ctx) error {
	dto := new(models.SignedActionDto)
	if err := c.BodyParser(dto); err != nil {
		return a.badRequest(c, err)
	}
	return a.apply(c, dto.Proof, game.Roll{})
}

func (a *API) Buy(c *fiber.Ctx) error {
	dto := new(models.SignedBuyDto)
	if err := c.BodyParser(dto); err != nil {
		return a.badRequest(c, err)
	}
	return a.apply(c, dto.Proof, game.Buy{TileID: dto.TileId})
}

func (a *API) SkipBuy(c *fiber.Ctx) error {
	dto := new(models.SignedActionDto)
	if err := c.BodyParser(dto); err != nil {
		return a.badRequest(c, err)
	}
	return a.apply(c, dto.Proof, game.SkipBuy{})
}

func (a *API) CreateOffer(c *fiber.Ctx) error {
	dto := new(models.SignedOfferDto)
	if err := c.BodyParser(dto); err != nil {
		return a.badRequest(c, err)
	}
	return a.apply(c, dto.Proof, game.CreateOffer{Kind: dto.Type, To: dto.To, TileID: dto.TileId, Price: dto.Price})
}

func (a *API) AcceptOffer(c *fiber.Ctx) error {
	dto := new(models.SignedActionDto)
	if err := c.BodyParser(dto); err != nil {
		return a.badRequest(c, err)
	}
	return a.apply(c, dto.Proof, game.AcceptOffer{OfferID: c.Params("offerId")})
}

func (a *API) DeclineOffer(c *fiber.Ctx) error {
	dto := new(models.SignedActionDto)
	if err := c.BodyParser(dto); err != nil {
		return a.badRequest(c, err)
	}
	return a.apply(c, dto.Proof, game.DeclineOffer{OfferID: c.Params("offerId")})
}

func (a *API) Settle(c *fiber.Ctx) error {
	dto := new(models.SignedSettleDto)
	if err := c.BodyParser(dto); err != nil {
		return a.badRequest(c, err)
	}
	return a.apply(c, dto.Proof, game.Settle{TxHash: dto.TxHash})
}

// Reset needs a session token issued for this game by ConnectWallet.
func (a *API) Reset(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if u.GameId != gameID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "token is for another game"})
	}

	s, err := a.session(c)
	if err != nil {
		return a.fail(c, err)
	}
	snap, err := s.Reset(c.UserContext())
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(snap)
}
