/*
Package config loads runtime configuration from the environment.

PURPOSE:
  All deployment-specific settings in one place, read once at startup.
  A .env file is honored when present (local development); real
  environments set variables directly.

VARIABLES:
  SERVER_PORT         HTTP port (default 8080)
  LOG_LEVEL           logrus level: debug, info, warn, error (default info)
  DB_PATH             SQLite path for the balance audit log; empty keeps
                      the audit log in memory
  ENCASH_DAILY_RATE   payout per encashed day (default 2000)
  ENCASH_MIN_BALANCE  days that must remain after encashing (default 5)
*/
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/warp/leave-engine/leave"
)

type Config struct {
	ServerPort       int
	LogLevel         string
	DBPath           string
	EncashDailyRate  float64
	EncashMinBalance int
}

// Load reads configuration from the environment, honoring a .env file
// when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:       getEnvInt("SERVER_PORT", 8080),
		LogLevel:         getEnvString("LOG_LEVEL", "info"),
		DBPath:           getEnvString("DB_PATH", ""),
		EncashDailyRate:  getEnvFloat("ENCASH_DAILY_RATE", 2000),
		EncashMinBalance: getEnvInt("ENCASH_MIN_BALANCE", 5),
	}
}

// Policy returns the leave policy with encashment settings applied.
func (c *Config) Policy() leave.LeavePolicy {
	policy := leave.DefaultPolicy()
	policy.Encashment.DailyRate = leave.NewMoney(c.EncashDailyRate)
	policy.Encashment.MinBalance = c.EncashMinBalance
	return policy
}

// helper function to read an environment variable or return a default value
func getEnvString(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, err := strconv.Atoi(getEnvString(key, strconv.Itoa(defaultVal)))
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvFloat(key string, defaultVal float64) float64 {
	val, err := strconv.ParseFloat(getEnvString(key, ""), 64)
	if err != nil {
		return defaultVal
	}
	return val
}
