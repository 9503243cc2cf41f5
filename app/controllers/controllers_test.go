package controllers_test

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/DedS3t/flarepoly-backend/app/controllers"
	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/DedS3t/flarepoly-backend/pkg/routes"
	"github.com/DedS3t/flarepoly-backend/platform/auth"
	"github.com/DedS3t/flarepoly-backend/platform/cache"
	"github.com/DedS3t/flarepoly-backend/platform/dice"
	"github.com/DedS3t/flarepoly-backend/platform/game"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newApp(t *testing.T, opts ...func(*controllers.API)) *fiber.App {
	t.Helper()
	m := game.NewManager(func(id string) *game.Session {
		cfg := game.DefaultConfig()
		cfg.Players = 2
		cfg.RequireSettlement = false
		return game.NewSession(id, cfg, game.Deps{
			Gate: auth.NewGate(nil, 114),
			Dice: &dice.Scripted{Rolls: [][2]int{{6, 6}}},
			Log:  quiet(),
		})
	})
	t.Cleanup(m.Close)
	m.GetOrCreate("local")

	api := &controllers.API{
		Games:        m,
		Challenges:   cache.NewMemoryChallenges(),
		ChainID:      114,
		JWTSecret:    []byte("test-secret"),
		ChallengeTTL: time.Minute,
		TokenTTL:     time.Hour,
		Log:          quiet(),
	}
	for _, opt := range opts {
		opt(api)
	}
	app := fiber.New()
	guard := routes.Guard(api.JWTSecret)
	routes.AuthRoutes(app, api, guard)
	routes.GameRoutes(app, api, guard)
	routes.LocalRoutes(app, api, guard, "local")
	return app
}

type response struct {
	code int
	body map[string]interface{}
}

func call(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	out := response{code: res.StatusCode}
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	_ = json.Unmarshal(raw, &out.body)
	return out
}

func sign(t *testing.T, key *ecdsa.PrivateKey, msg string) models.SigProof {
	sig, err := auth.SignMessage(key, msg)
	require.NoError(t, err)
	return models.SigProof{Address: auth.AddressOf(key), Message: msg, Signature: sig}
}

func connect(t *testing.T, app *fiber.App, base string, player int, key *ecdsa.PrivateKey) string {
	t.Helper()
	res := call(t, app, http.MethodGet, base+"/connect_message?playerIndex="+strconv.Itoa(player), nil, "")
	require.Equal(t, http.StatusOK, res.code)
	msg := res.body["message"].(string)

	res = call(t, app, http.MethodPost, base+"/connect_wallet", models.ConnectWalletDto{PlayerIndex: player, Proof: sign(t, key, msg)}, "")
	require.Equal(t, http.StatusOK, res.code, res.body)
	return res.body["access_token"].(string)
}

func actionProof(t *testing.T, app *fiber.App, base string, player int, action, params string, key *ecdsa.PrivateKey) models.SigProof {
	t.Helper()
	q := url.Values{}
	q.Set("playerIndex", strconv.Itoa(player))
	q.Set("action", action)
	q.Set("params", params)
	res := call(t, app, http.MethodGet, base+"/action_message?"+q.Encode(), nil, "")
	require.Equal(t, http.StatusOK, res.code)
	return sign(t, key, res.body["message"].(string))
}

func TestGameLifecycle(t *testing.T) {
	app := newApp(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	res := call(t, app, http.MethodPost, "/game/create", models.GameCreateDto{Name: "friday"}, "")
	require.Equal(t, http.StatusCreated, res.code)
	id := res.body["id"].(string)
	base := "/game/" + id

	res = call(t, app, http.MethodGet, "/game/verify?code="+id, nil, "")
	assert.Equal(t, true, res.body["status"])
	res = call(t, app, http.MethodGet, "/game/verify?code=nope", nil, "")
	assert.Equal(t, false, res.body["status"])

	token := connect(t, app, base, 0, key)

	t.Run("a signed roll moves the player", func(t *testing.T) {
		proof := actionProof(t, app, base, 0, game.ActionRoll, "", key)
		res := call(t, app, http.MethodPost, base+"/roll", models.SignedActionDto{Proof: proof}, "")
		require.Equal(t, http.StatusOK, res.code, res.body)
		assert.Equal(t, float64(1), res.body["activePlayerId"])

		res = call(t, app, http.MethodPost, base+"/roll", models.SignedActionDto{Proof: proof}, "")
		assert.Equal(t, http.StatusUnauthorized, res.code)
		assert.NotEmpty(t, res.body["error"])
	})

	t.Run("connect without a challenge is rejected", func(t *testing.T) {
		res := call(t, app, http.MethodPost, base+"/connect_wallet", models.ConnectWalletDto{PlayerIndex: 1, Proof: sign(t, key, "hi")}, "")
		assert.Equal(t, http.StatusUnauthorized, res.code)
	})

	t.Run("the session token identifies the seat", func(t *testing.T) {
		res := call(t, app, http.MethodGet, "/user/cur", nil, token)
		require.Equal(t, http.StatusOK, res.code)
		assert.Equal(t, id, res.body["game_id"])
		assert.Equal(t, float64(0), res.body["player"])
	})

	t.Run("reset needs a token for this game", func(t *testing.T) {
		res := call(t, app, http.MethodPost, base+"/reset", nil, "")
		assert.NotEqual(t, http.StatusOK, res.code)

		other := connect(t, app, "", 0, key)
		res = call(t, app, http.MethodPost, base+"/reset", nil, other)
		assert.Equal(t, http.StatusForbidden, res.code)

		res = call(t, app, http.MethodPost, base+"/reset", nil, token)
		require.Equal(t, http.StatusOK, res.code)
		assert.Equal(t, float64(1), res.body["epoch"])
	})

	t.Run("unknown games are 404", func(t *testing.T) {
		res := call(t, app, http.MethodGet, "/game/nope/state", nil, "")
		assert.Equal(t, http.StatusNotFound, res.code)
	})
}

func TestLocalRoutes(t *testing.T) {
	app := newApp(t)

	res := call(t, app, http.MethodGet, "/state", nil, "")
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "local", res.body["gameId"])

	res = call(t, app, http.MethodGet, "/wallet/0xabc/balance", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, res.code)
}

type storedSnapshots map[string]models.Snapshot

func (s storedSnapshots) Load(_ context.Context, id string) (models.Snapshot, error) {
	snap, ok := s[id]
	if !ok {
		return models.Snapshot{}, errors.New("nil returned")
	}
	return snap, nil
}

func TestStateOfFinishedGame(t *testing.T) {
	winner := 1
	stored := storedSnapshots{"old": {GameId: "old", Version: 42, GameOver: true, Winner: &winner}}
	app := newApp(t, func(api *controllers.API) { api.Snapshots = stored })

	res := call(t, app, http.MethodGet, "/game/old/state", nil, "")
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "old", res.body["gameId"])
	assert.Equal(t, float64(42), res.body["version"])
	assert.Equal(t, true, res.body["gameOver"])

	res = call(t, app, http.MethodGet, "/game/missing/state", nil, "")
	assert.Equal(t, http.StatusNotFound, res.code)

	t.Run("live sessions win over stored state", func(t *testing.T) {
		stored["local"] = models.Snapshot{GameId: "local", Version: 99}
		res := call(t, app, http.MethodGet, "/state", nil, "")
		require.Equal(t, http.StatusOK, res.code)
		assert.NotEqual(t, float64(99), res.body["version"])
	})
}
