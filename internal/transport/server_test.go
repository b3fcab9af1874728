package transport_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pass-wallet/enclave/internal/config"
	"github.com/pass-wallet/enclave/internal/dispatch"
	"github.com/pass-wallet/enclave/internal/kms"
	"github.com/pass-wallet/enclave/internal/registry"
	"github.com/pass-wallet/enclave/internal/transport"
)

func TestServeHandlesRequestsInOrder(t *testing.T) {
	m, err := kms.NewManager("test-secret-phrase-not-for-production", zerolog.Nop())
	require.NoError(t, err)
	reg := registry.New(m, zerolog.Nop(), false)
	d := dispatch.New(m, reg, zerolog.Nop())

	cfg := config.Config{Transport: config.TransportTCP, Port: 18123}
	srv, err := transport.Listen(cfg, d, zerolog.Nop())
	require.NoError(t, err)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Serve(ctx)

	conn, err := net.DialTimeout("tcp", "127.0.0.1:18123", time.Second)
	require.NoError(t, err)
	defer conn.Close()

	reader := bufio.NewReader(conn)

	_, err = conn.Write([]byte(`{"Keygen":{}}` + "\n"))
	require.NoError(t, err)
	line1, err := reader.ReadBytes('\n')
	require.NoError(t, err)
	var resp1 dispatch.Response
	require.NoError(t, json.Unmarshal(line1, &resp1))
	assert.True(t, resp1.Success)

	_, err = conn.Write([]byte(`{"List":{}}` + "\n"))
	require.NoError(t, err)
	line2, err := reader.ReadBytes('\n')
	require.NoError(t, err)
	var resp2 dispatch.Response
	require.NoError(t, json.Unmarshal(line2, &resp2))
	assert.True(t, resp2.Success)
}
