package hotel

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime configuration. Each field corresponds to an
// environment variable; every value has a default suitable for a local run.
type Config struct {
	DBPath     string // path to the SQLite database file
	Name       string // hotel name shown in the CLI banner
	Address    string // hotel street address
	Phone      string // hotel phone number
	BcryptCost int    // bcrypt cost for guest password hashing
}

// LoadConfig reads configuration from the environment, loading a .env file
// first if one is present.
func LoadConfig() Config {
	_ = godotenv.Load()
	return Config{
		DBPath:     getenv("HOTEL_DB_PATH", "hotel.db"),
		Name:       getenv("HOTEL_NAME", "Hotel"),
		Address:    getenv("HOTEL_ADDRESS", ""),
		Phone:      getenv("HOTEL_PHONE", ""),
		BcryptCost: getenvInt("HOTEL_BCRYPT_COST", bcrypt.DefaultCost),
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
