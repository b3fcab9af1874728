// Command enclave runs the PASS Wallet Enclave core: key manager, wallet
// registry, command dispatcher, and the transport that serves them.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pass-wallet/enclave/internal/config"
	"github.com/pass-wallet/enclave/internal/dispatch"
	"github.com/pass-wallet/enclave/internal/kms"
	"github.com/pass-wallet/enclave/internal/obslog"
	"github.com/pass-wallet/enclave/internal/registry"
	"github.com/pass-wallet/enclave/internal/transport"
)

func main() {
	log := obslog.New("enclave", os.Getenv("ENV") != "production")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	keyManager, err := kms.NewManager(cfg.EnclaveSecret, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize key manager")
	}
	log.Info().Msg("key manager ready")

	reg := registry.New(keyManager, log, cfg.Strict)
	d := dispatch.New(keyManager, reg, log)

	srv, err := transport.Listen(cfg, d, log)
	if err != nil {
		log.Fatal().Err(err).Str("transport", string(cfg.Transport)).Int("port", cfg.Port).Msg("failed to bind transport")
	}
	log.Info().Str("transport", string(cfg.Transport)).Int("port", cfg.Port).Msg("listening")

	go serveMetrics(cfg.MetricsPort, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Serve(ctx); err != nil {
		log.Fatal().Err(err).Msg("transport server exited with error")
	}
	log.Info().Msg("enclave shut down")
}

func serveMetrics(port int, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := ":" + strconv.Itoa(port)
	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("metrics server exited")
	}
}
