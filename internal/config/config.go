// Package config loads and validates the enclave process's environment.
// Load returns a wrapped error rather than logging and exiting directly, so
// callers (including tests) can handle a misconfigured environment without
// a process exit.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type TransportMode string

const (
	TransportTCP   TransportMode = "tcp"
	TransportVsock TransportMode = "vsock"
)

// Config is every environment-derived setting the enclave process needs at
// startup. Nothing here is mutated after Load returns.
type Config struct {
	EnclaveSecret string
	Transport     TransportMode
	Port          int
	LockTimeout   time.Duration
	MetricsPort   int

	// Strict, when true, requires an explicit gas_limit on every non-ETH
	// withdrawal rather than falling back to the advisory txencoder
	// defaults. Intended for production deployments; left off by default
	// so local/dev/test callers can omit gas_limit.
	Strict bool
}

// Load reads a .env file if present (ignored if absent, since production
// deployments set the environment directly), then builds and validates a
// Config from the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: failed to read .env: %w", err)
	}

	cfg := Config{
		EnclaveSecret: os.Getenv("ENCLAVE_SECRET"),
		Transport:     TransportMode(getEnv("TRANSPORT_MODE", string(TransportTCP))),
		LockTimeout:   getEnvDuration("LOCK_TIMEOUT", 5*time.Second),
		MetricsPort:   getEnvInt("METRICS_PORT", 9090),
		Strict:        getEnvBool("STRICT_MODE", false),
	}

	switch cfg.Transport {
	case TransportTCP:
		cfg.Port = getEnvInt("HTTP_PORT", 5000)
	case TransportVsock:
		cfg.Port = getEnvInt("VSOCK_PORT", 7777)
	default:
		return Config{}, fmt.Errorf("config: unrecognized TRANSPORT_MODE %q (want %q or %q)", cfg.Transport, TransportTCP, TransportVsock)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field Load cannot already guarantee by construction.
func (c Config) Validate() error {
	missing := []string{}
	if c.EnclaveSecret == "" {
		missing = append(missing, "ENCLAVE_SECRET")
	}
	if c.Port <= 0 || c.Port > 65535 {
		missing = append(missing, "HTTP_PORT/VSOCK_PORT (out of range)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing or invalid required settings: %v", missing)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
