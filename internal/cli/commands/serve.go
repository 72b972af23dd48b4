package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/signalboard/internal/ui"
)

// ServeOptions holds options for the serve command. Port, browser and watch
// settings are config keys and are read from the loaded config.
type ServeOptions struct {
	Dev bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the dashboard web UI",
		Long: `Start a local web server hosting the scenario dashboard.

Every browser session gets its own view state. Tab and scenario changes are
pushed to the page over server-sent events. When reading from a data
directory, edits to the JSON files are picked up without a restart.`,
		Example: `  # Start UI on default port
  signalboard serve

  # Start on custom port against a data directory
  signalboard serve --port 3000 --data-dir ./fixtures

  # Start without auto-opening browser
  signalboard serve --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().Int("port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().Bool("no-browser", false, "Don't auto-open browser")
	cmd.Flags().Bool("watch", true, "Watch the data directory for changes")
	cmd.Flags().Duration("session-ttl", 0, "Idle time before a session is dropped (default: 30m)")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Enable development endpoints")
	_ = cmd.Flags().MarkHidden("dev")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	uiCfg := cc.Cfg.UI

	secret := uiCfg.SessionSecret
	if secret == "" {
		secret = generateSessionSecret()
		cc.Logger.Debug("generated ephemeral session secret")
	}

	server := ui.NewServer(ui.Config{
		Loader:        cc.Loader,
		Port:          uiCfg.Port,
		SessionSecret: secret,
		SessionTTL:    uiCfg.SessionTTL,
		Watch:         uiCfg.Watch,
		DataDir:       cc.DataDir,
		Dev:           opts.Dev,
		Logger:        cc.Logger,
	})

	url := fmt.Sprintf("http://localhost:%d", uiCfg.Port)
	if uiCfg.AutoOpen {
		go openBrowser(url)
	}

	cc.Renderer.Printf("Serving dashboard on %s\n", url)
	cc.Renderer.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}

// generateSessionSecret returns a random secret. Sessions signed with it do
// not survive a restart; set ui.session_secret to keep them.
func generateSessionSecret() string {
	return hex.EncodeToString(securecookie.GenerateRandomKey(32))
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(context.Background(), "open", url)
	case "linux":
		cmd = exec.CommandContext(context.Background(), "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(context.Background(), "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}
