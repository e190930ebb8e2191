package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bubbles/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagSSHPicture  string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bubbles SSH server",
	Long: `Start an SSH server that lets users connect and reveal pictures.

Each SSH connection gets its own reveal sized to the client terminal.
Only built-in pictures are served; the client picks one by passing its ID
as the SSH command. Reveals are recorded in the server's history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bubbles/host_key

Examples:
  bubbles serve                           # Listen on :23234 with auto-generated key
  bubbles serve --ssh :2222               # Listen on port 2222
  bubbles serve --picture rings           # Default picture for new sessions
  bubbles serve --db ./history.db         # Use specific database

Users can connect with:
  ssh -t localhost -p 23234 [picture]`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagSSHPicture, "picture", "gradient", "Picture shown when the client names none")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := log.FromContext(cmd.Context()).WithPrefix("bubbles-ssh")

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		Picture:     flagSSHPicture,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Bubbles:     bubblesCfg,
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting bubbles SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh -t localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
