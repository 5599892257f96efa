package config

import (
	"os"
	"strconv"
)

// FromEnv overrides fields from PORT, LOG_LEVEL, CURRENCY_FILE, LEVELS_DIR
// and SEED_LEVELS when they are set.
func (c *Config) FromEnv() {
	if val := getEnvInt("PORT"); val > 0 {
		c.Port = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val, ok := os.LookupEnv("CURRENCY_FILE"); ok {
		c.CurrencyFile = val
	}
	if val := os.Getenv("LEVELS_DIR"); val != "" {
		c.LevelsDir = val
	}
	if val, ok := getEnvBool("SEED_LEVELS"); ok {
		c.Generator.SeedLevels = val
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}
	return b, true
}
