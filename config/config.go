package config

import "os"

type Config struct {
	APIBaseURL string
	APIToken   string
	JWTSecret  string
	// Cart persistence: a database URL selects postgres, otherwise
	// the cart lives in a local sqlite file. REDIS_ADDR switches to
	// the redis adapter instead.
	CartDatabaseURL string
	CartSQLitePath  string
	RedisAddr       string
	ProfileKey      string
}

func Load() Config {
	return Config{
		APIBaseURL:      getenv("API_BASE_URL", "http://localhost:8080"),
		APIToken:        os.Getenv("API_TOKEN"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CartDatabaseURL: os.Getenv("CART_DATABASE_URL"),
		CartSQLitePath:  getenv("CART_SQLITE_PATH", "cart.db"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		ProfileKey:      getenv("PROFILE_KEY", "default"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
