package controllers

import (
	"errors"
	"time"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/DedS3t/flarepoly-backend/platform/auth"
	"github.com/DedS3t/flarepoly-backend/platform/cache"
	"github.com/DedS3t/flarepoly-backend/platform/chain"
	"github.com/DedS3t/flarepoly-backend/platform/game"
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
)

// ConnectMessage issues the one-time challenge a wallet signs to claim a seat.
func (a *API) ConnectMessage(c *fiber.Ctx) error {
	dto := new(models.ConnectMessageDto)
	if err := c.QueryParser(dto); err != nil {
		return a.badRequest(c, err)
	}
	s, err := a.session(c)
	if err != nil {
		return a.fail(c, err)
	}
	ref, err := s.Ref(c.UserContext())
	if err != nil {
		return a.fail(c, err)
	}

	msg := auth.BuildChallenge(ref, a.ChainID, dto.PlayerIndex, uuid.NewV4().String())
	if err := a.Challenges.Put(c.UserContext(), cache.ChallengeKey(s.ID(), dto.PlayerIndex), msg, a.ChallengeTTL); err != nil {
		return a.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": msg})
}

// ConnectWallet binds a wallet to a seat and returns a session token for it.
func (a *API) ConnectWallet(c *fiber.Ctx) error {
	dto := new(models.ConnectWalletDto)
	if err := c.BodyParser(dto); err != nil {
		return a.badRequest(c, err)
	}
	s, err := a.session(c)
	if err != nil {
		return a.fail(c, err)
	}

	expected, err := a.Challenges.Take(c.UserContext(), cache.ChallengeKey(s.ID(), dto.PlayerIndex))
	if err != nil {
		return a.fail(c, err)
	}
	snap, err := s.ConnectWallet(c.UserContext(), game.ConnectWallet{
		PlayerIndex:     dto.PlayerIndex,
		Proof:           dto.Proof,
		ExpectedMessage: expected,
	})
	if err != nil {
		return a.fail(c, err)
	}

	t, err := a.issueToken(models.User{GameId: s.ID(), Player: dto.PlayerIndex, Address: dto.Proof.Address})
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"access_token": t, "state": snap})
}

func (a *API) issueToken(u models.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["game_id"] = u.GameId
	claims["player"] = u.Player
	claims["address"] = u.Address
	claims["exp"] = time.Now().Add(a.TokenTTL).Unix()
	return token.SignedString(a.JWTSecret)
}

// currentUser reads the claims the guard middleware left in Locals.
func currentUser(c *fiber.Ctx) (models.User, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return models.User{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.User{}, false
	}
	u := models.User{}
	u.GameId, _ = claims["game_id"].(string)
	u.Address, _ = claims["address"].(string)
	player, ok := claims["player"].(float64)
	if !ok || u.GameId == "" {
		return models.User{}, false
	}
	u.Player = int(player)
	return u, true
}

// ActionMessage returns the exact message to sign for the player's next action.
func (a *API) ActionMessage(c *fiber.Ctx) error {
	dto := new(models.ActionMessageDto)
	if err := c.QueryParser(dto); err != nil {
		return a.badRequest(c, err)
	}
	s, err := a.session(c)
	if err != nil {
		return a.fail(c, err)
	}
	msg, nonce, err := s.ActionMessage(c.UserContext(), dto.PlayerIndex, dto.Action, dto.Params)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": msg, "nonce": nonce})
}

func (a *API) Cur(c *fiber.Ctx) error {
	u, ok := currentUser(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	return c.JSON(u)
}

func (a *API) WalletBalance(c *fiber.Ctx) error {
	if a.Balances == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "no chain connection"})
	}
	address := c.Params("address")
	bal, err := a.Balances.BalanceOf(c.UserContext(), address)
	if err != nil {
		if errors.Is(err, chain.ErrBadAddress) {
			return a.badRequest(c, err)
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"address": address, "balanceRaw": bal.String()})
}
