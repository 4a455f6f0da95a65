package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Sokoban SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session of the pack, starting in the
level picker. Solve records are shared by everyone on the server.
Saving is not available over SSH.

Host key handling:
  - server.host_key_path (or --host-key) names the key file
  - A missing key is generated on first start

Examples:
  sokoban serve                           # Listen on server.address
  sokoban serve --ssh :2222               # Listen on port 2222
  sokoban serve --host-key ./my_host_key  # Use specific host key
  sokoban serve --pack classic --db ./sokoban.db

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address host:port (overrides server.address)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides server.host_key_path)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (overrides server.idle_timeout)")
}

func runServe(_ *cobra.Command, _ []string) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	if flagSSHAddr != "" {
		a.cfg.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		a.cfg.Server.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		a.cfg.Server.IdleTimeout = flagIdleTimeout
	}
	a.openStore()

	server, err := tui.NewSSHServer(tui.SSHServerConfigFrom(a.cfg), a.store, a.logger)
	if err != nil {
		a.close()
		fail("creating server: %v", err)
	}

	a.logger.Info("press Ctrl+C to stop")
	runErr := server.ListenAndServe()
	a.close()
	if runErr != nil {
		fail("server: %v", runErr)
	}
}
