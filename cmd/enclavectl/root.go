// Command enclavectl is a thin JSON-protocol test client for the PASS
// Wallet Enclave: one subcommand per dispatcher command, each printing the
// response envelope it receives.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"
)

var (
	network string
	addr    string
)

var rootCmd = &cobra.Command{
	Use:   "enclavectl",
	Short: "Test client for the PASS Wallet Enclave command protocol",
	Long: `enclavectl sends one tagged command per invocation to an enclave
process over its newline-delimited JSON transport and prints the response
envelope it receives back.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&network, "network", "tcp", `transport network: "tcp" or "unix"`)
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "127.0.0.1:5000", "enclave address (host:port for tcp, path for unix)")
}

// sendCommand wraps payload under tag as the single command envelope key,
// sends it as one newline-delimited JSON line, reads back the single-line
// JSON response, and prints it indented (or verbatim if it does not parse
// as a JSON object).
func sendCommand(tag string, payload interface{}) error {
	envelope := map[string]interface{}{tag: payload}
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encode command: %w", err)
	}

	conn, err := net.Dial(network, addr)
	if err != nil {
		return fmt.Errorf("dial enclave at %s: %w", addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write command: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		return fmt.Errorf("enclave closed the connection without a response")
	}

	var pretty map[string]interface{}
	if err := json.Unmarshal(scanner.Bytes(), &pretty); err != nil {
		fmt.Println(scanner.Text())
		return nil
	}
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		fmt.Println(scanner.Text())
		return nil
	}
	fmt.Println(string(out))
	return nil
}

func fatalIfErr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
