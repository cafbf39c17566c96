package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ironsheep/photo-editor-mcp/internal/editor"
	"github.com/spf13/cobra"
)

var (
	logLevel string

	// logger is configured before every command runs.
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	rootCmd = &cobra.Command{
		Use:   "photo-editor-mcp",
		Short: "An MCP server for cropping, rotating and color-adjusting photos",
		Long: `photo-editor-mcp serves a photo editing pipeline over the MCP protocol on stdin/stdout.
Without a subcommand it runs the server. Logs are written to stderr.

Environment variables:
  PHOTO_EDITOR_LOG_LEVEL       debug, info, warn or error (default info)
  PHOTO_EDITOR_PREVIEW_MAX     preview size limit as WxH (default 1024x768)
  PHOTO_EDITOR_INTERPOLATION   nearest, approx-bilinear, bilinear or catmull-rom`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(cmd.ErrOrStderr(), logLevel)
			if err != nil {
				return newExitCodeError(err, ExitCodeInvalidArguments)
			}
			logger = l
			editor.SetLogger(l)
			return nil
		},
		RunE: runServe,
	}
)

// Execute executes the root command.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("PHOTO_EDITOR_LOG_LEVEL", "info"), "Log level: debug, info, warn or error.")
	rootCmd.SetVersionTemplate(versionText())
	addServeOptions(rootCmd)
}

// newLogger returns a text logger writing to w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
