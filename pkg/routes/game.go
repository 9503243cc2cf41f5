package routes

import (
	"github.com/DedS3t/flarepoly-backend/app/controllers"
	"github.com/gofiber/fiber/v2"
)

func GameRoutes(a *fiber.App, api *controllers.API, guard fiber.Handler) {
	route := a.Group("/game")
	route.Post("/create", api.CreateGame)
	route.Get("/verify", api.VerifyGame)
	route.Get("/all", api.GetAllAvailGames)

	sessionRoutes(route.Group("/:id"), api, guard)
}

// LocalRoutes serves one fixed game at the root paths, matching the
// single-game API the web client was first written against.
func LocalRoutes(a *fiber.App, api *controllers.API, guard fiber.Handler, id string) {
	route := a.Group("/", func(c *fiber.Ctx) error {
		c.Locals("game", id)
		return c.Next()
	})
	sessionRoutes(route, api, guard)
}

func sessionRoutes(route fiber.Router, api *controllers.API, guard fiber.Handler) {
	route.Get("/state", api.GetState)
	route.Get("/action_message", api.ActionMessage)
	route.Get("/connect_message", api.ConnectMessage)
	route.Post("/connect_wallet", api.ConnectWallet)
	route.Post("/reset", guard, api.Reset)
	route.Post("/roll", api.Roll)
	route.Post("/buy", api.Buy)
	route.Post("/skip_buy", api.SkipBuy)
	route.Post("/offers", api.CreateOffer)
	route.Post("/offers/:offerId/accept", api.AcceptOffer)
	route.Post("/offers/:offerId/decline", api.DeclineOffer)
	route.Post("/settle", api.Settle)
}
