// Package transport serves the enclave's newline-delimited JSON protocol
// over either loopback TCP or a local trusted stream socket standing in
// for vsock. Each accepted connection is served by its own goroutine; a
// process-wide semaphore of DefaultMaxConcurrentConns slots bounds how many
// of those goroutines may be dispatching a command at the same time, while
// the number of open connections is not limited. Each connection is read and answered in
// request order: the wire protocol carries no request ID to correlate an
// out-of-order response back to its request, so one connection never has
// more than one dispatch in flight.
package transport

import (
	"bufio"
	"context"
	"net"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/pass-wallet/enclave/internal/config"
	"github.com/pass-wallet/enclave/internal/dispatch"
)

// DefaultMaxConcurrentConns bounds how many connections may be actively
// dispatching a command at once, process-wide.
const DefaultMaxConcurrentConns = 64

type Server struct {
	listener   net.Listener
	dispatcher *dispatch.Dispatcher
	pool       *semaphore.Weighted
	log        zerolog.Logger
}

// Listen opens the configured transport's listener without yet serving
// connections.
func Listen(cfg config.Config, dispatcher *dispatch.Dispatcher, log zerolog.Logger) (*Server, error) {
	network := "tcp"
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.Port))
	if cfg.Transport == config.TransportVsock {
		// No vsock-capable library is available in this toolchain; a
		// loopback Unix domain socket is used as a local trusted-channel
		// stand-in with the same framing and dispatch path.
		network = "unix"
		addr = "/tmp/pass-wallet-enclave.sock"
	}

	ln, err := net.Listen(network, addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener:   ln,
		dispatcher: dispatcher,
		pool:       semaphore.NewWeighted(DefaultMaxConcurrentConns),
		log:        log,
	}, nil
}

// Serve accepts connections until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	writer := bufio.NewWriter(conn)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if err := s.pool.Acquire(ctx, 1); err != nil {
			return
		}
		resp := s.dispatcher.HandleRaw(ctx, line)
		s.pool.Release(1)

		if _, err := writer.Write(resp); err != nil {
			return
		}
		if err := writer.WriteByte('\n'); err != nil {
			return
		}
		if err := writer.Flush(); err != nil {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		s.log.Debug().Err(err).Msg("connection closed")
	}
}

func (s *Server) Close() error {
	return s.listener.Close()
}
