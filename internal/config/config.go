package config

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string `default:":8080" usage:"HTTP listen address"`
	DBDSN    string `default:"threadline.db" usage:"sqlite file path" env:"DB_DSN"`
	MediaDir string `default:"./web/media" usage:"uploaded image directory" env:"MEDIA_DIR"`

	// Admin gate: one shared password, fixed-TTL sessions, no identity.
	AdminPassword string        `usage:"shared admin password" env:"ADMIN_PASSWORD"`
	SessionTTL    time.Duration `default:"12h" usage:"admin session lifetime" env:"SESSION_TTL"`

	// Checkout.
	WhatsAppNumber  string `default:"923001234567" usage:"destination WhatsApp number, digits only" env:"WHATSAPP_NUMBER"`
	ShippingFee     int64  `default:"150" usage:"flat shipping fee below the free threshold" env:"SHIPPING_FEE"`
	FreeShippingMin int64  `default:"1000" usage:"subtotal at which shipping becomes free" env:"FREE_SHIPPING_MIN"`
}

// Load reads .env (when present), then environment variables with the
// THREADLINE prefix, then flags.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix:        "THREADLINE",
		AllowUnknownEnvs: true,
	})
	if err := loader.Load(); err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("THREADLINE_ADMIN_PASSWORD is required")
	}
	return cfg, nil
}
