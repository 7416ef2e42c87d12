package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName string
	Env     string // DEV (default), TEST, QA, PROD
	Debug   bool
	Build   string

	// SecretKey signs the JWTs issued by the stub server and verifies
	// tokens in TEST mode. Against the real backend the token is opaque
	// to us and claims are parsed unverified.
	SecretKey string

	API struct {
		BaseURL  string
		Timeout  time.Duration
		PageSize int
	}

	// BannerDelay is how long transient success/error banners stay visible.
	BannerDelay time.Duration

	GeocoderURL string
	RoutingURL  string

	RollbarToken string
}

// LoadConfig loads the app configuration from defaults, an optional
// `config/.env.<env>` file and environment variables (prefixed with the
// environment name).
func LoadConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "RedSocial")
	v.SetDefault("secretKey", "n0t-4-s3cret-d3v-k3y")
	v.SetDefault("apiBaseUrl", "http://localhost:8000")
	v.SetDefault("apiTimeout", 30*time.Second)
	v.SetDefault("apiPageSize", 20)
	v.SetDefault("bannerDelay", 3*time.Second)
	v.SetDefault("geocoderUrl", "https://nominatim.openstreetmap.org")
	v.SetDefault("routingUrl", "https://router.project-osrm.org")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("build", "dev")

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Debug:        v.GetBool("debug"),
		Build:        v.GetString("build"),
		SecretKey:    v.GetString("secretKey"),
		BannerDelay:  v.GetDuration("bannerDelay"),
		GeocoderURL:  v.GetString("geocoderUrl"),
		RoutingURL:   v.GetString("routingUrl"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.API.BaseURL = v.GetString("apiBaseUrl")
	conf.API.Timeout = v.GetDuration("apiTimeout")
	conf.API.PageSize = v.GetInt("apiPageSize")
	return conf
}

// TestConfig returns a Config suitable for tests: short banner delay, debug on.
func TestConfig() *Config {
	conf := &Config{
		AppName:     "RedSocial",
		Env:         "TEST",
		Debug:       true,
		Build:       "test",
		SecretKey:   "test-secret",
		BannerDelay: 10 * time.Millisecond,
	}
	conf.API.BaseURL = "http://localhost:8000"
	conf.API.Timeout = 5 * time.Second
	conf.API.PageSize = 20
	return conf
}
