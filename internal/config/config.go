// Package config loads application configuration from environment variables.
// A .env file is read by the entry point before Load runs; everything here
// only looks at the process environment.
package config

import (
	"fmt"
	"log"
)

// secretKeyPlaceholder is the value shipped in example env files. Running
// with it means the deployment never set a real key, so Load refuses it.
const secretKeyPlaceholder = "secret key for project"

// minSecretKeyLength is the minimum accepted SECRET_KEY length.
const minSecretKeyLength = 32

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable: strings for identifiers and secrets, ints for
// connection pool bounds.
type Config struct {
	Env             string   // application environment (dev/test/prod)
	Port            string   // HTTP port to listen on
	Debug           bool     // enables debug behavior (relaxed host checks)
	SecretKey       string   // application secret, validated at load time
	AllowedHosts    []string // Host header allowlist, "*" disables the check
	MongoURL        string   // full MongoDB connection string
	MongoDB         string   // database name
	MovieCollection string   // collection holding movie documents
	MaxPoolSize     uint64   // upper bound of the driver connection pool
	MinPoolSize     uint64   // lower bound of the driver connection pool
}

// Load reads configuration from the environment and returns a Config. An
// unset or invalid SECRET_KEY is fatal; everything else has a default.
func Load() Config {
	cfg := Config{
		Env:             envStr("APP_ENV", "dev"),
		Port:            envStr("APP_PORT", "8000"),
		Debug:           envBool("DEBUG", false),
		SecretKey:       must("SECRET_KEY"),
		AllowedHosts:    ParseHosts(envStr("ALLOWED_HOSTS", "*")),
		MongoDB:         envStr("MONGO_DB", "moviedb"),
		MovieCollection: envStr("MOVIE_COLLECTION", "movies"),
		MaxPoolSize:     uint64(envInt("MAX_CONNECTIONS_COUNT", 10)),
		MinPoolSize:     uint64(envInt("MIN_CONNECTIONS_COUNT", 10)),
	}
	cfg.MongoURL = BuildMongoURL(
		envStr("MONGODB_URL", ""),
		envStr("MONGO_USER", ""),
		envStr("MONGO_PASSWORD", ""),
		envStr("MONGO_HOST", "localhost"),
		envStr("MONGO_PORT", "27017"),
		cfg.MongoDB,
	)
	if err := ValidateSecretKey(cfg.SecretKey); err != nil {
		log.Fatalf("invalid SECRET_KEY: %v", err)
	}
	return cfg
}

// BuildMongoURL returns raw unchanged when set, otherwise assembles a
// mongodb:// URL from the individual host settings. Credentials are included
// only when both user and password are present.
func BuildMongoURL(raw, user, password, host, port, db string) string {
	if raw != "" {
		return raw
	}
	if user != "" && password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s", user, password, host, port, db)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s", host, port, db)
}

// ValidateSecretKey rejects the known placeholder value and keys shorter
// than minSecretKeyLength characters.
func ValidateSecretKey(key string) error {
	if key == secretKeyPlaceholder {
		return fmt.Errorf("SECRET_KEY must be changed from the default placeholder")
	}
	if len(key) < minSecretKeyLength {
		return fmt.Errorf("SECRET_KEY must be at least %d characters long", minSecretKeyLength)
	}
	return nil
}

// ParseHosts splits a comma-separated host list, trimming whitespace and
// dropping empty entries. An empty input yields ["*"], which disables the
// Host header check.
func ParseHosts(s string) []string {
	hosts := splitComma(s)
	if len(hosts) == 0 {
		return []string{"*"}
	}
	return hosts
}
