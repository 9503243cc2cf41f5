package routes

import (
	"github.com/DedS3t/flarepoly-backend/app/controllers"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
)

// Guard checks the bearer token issued by connect_wallet.
func Guard(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: secret,
	})
}

func AuthRoutes(a *fiber.App, api *controllers.API, guard fiber.Handler) {
	user := a.Group("/user")
	user.Get("/cur", guard, api.Cur)

	wallet := a.Group("/wallet")
	wallet.Get("/:address/balance", api.WalletBalance)
}
