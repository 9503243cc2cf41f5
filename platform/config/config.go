package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	HTTPAddr    string   `env:"HTTP_ADDR,default=:4101"`
	SocketAddr  string   `env:"SOCKET_ADDR,default=:8000"`
	CORSOrigins []string `env:"CORS_ORIGINS,default=http://localhost:3000"`
	JWTSecret   string   `env:"JWT_SECRET,default=secret"`
	LogLevel    string   `env:"LOG_LEVEL,default=info"`
	LogFormat   string   `env:"LOG_FORMAT,default=text"`

	DBUser     string `env:"DB_USER"`
	DBAddr     string `env:"DB_ADDR"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`

	RedisURL string `env:"REDIS_URL"`

	RPCURL           string        `env:"FLARE_RPC_URL"`
	TokenContract    string        `env:"FXRP_CONTRACT"`
	Treasury         string        `env:"TREASURY_ADDRESS"`
	ChainID          int64         `env:"CHAIN_ID,default=114"`
	MinConfirmations uint64        `env:"MIN_CONFIRMATIONS,default=1"`
	VerifyTimeout    time.Duration `env:"VERIFY_TIMEOUT,default=15s"`
	RawPerCoin       string        `env:"RAW_PER_COIN,default=1000000"`

	RequireSettlement bool          `env:"REQUIRE_SETTLEMENT,default=true"`
	StartBalance      int           `env:"START_BALANCE,default=1500"`
	StartBonus        int           `env:"START_BONUS,default=200"`
	Players           int           `env:"PLAYERS,default=4"`
	DiceSeed          int64         `env:"DICE_SEED,default=0"`
	BoardFile         string        `env:"BOARD_FILE"`
	LogCap            int           `env:"LOG_CAP,default=400"`
	ChallengeTTL      time.Duration `env:"CHALLENGE_TTL,default=5m"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	var c Config
	if err := envdecode.StrictDecode(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.Players < 2 {
		return fmt.Errorf("PLAYERS must be at least 2, got %d", c.Players)
	}
	if c.StartBalance <= 0 {
		return fmt.Errorf("START_BALANCE must be positive, got %d", c.StartBalance)
	}
	if c.RequireSettlement && strings.TrimSpace(c.Treasury) == "" {
		return fmt.Errorf("TREASURY_ADDRESS is required when REQUIRE_SETTLEMENT is on")
	}
	return nil
}

func (c *Config) DatabaseEnabled() bool {
	return c.DBAddr != ""
}

func (c *Config) RedisEnabled() bool {
	return c.RedisURL != ""
}
