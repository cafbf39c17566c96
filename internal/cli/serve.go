package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ironsheep/photo-editor-mcp/internal/editor"
	"github.com/ironsheep/photo-editor-mcp/internal/server"
	"github.com/spf13/cobra"
)

var (
	previewMax    string
	interpolation string
	openTimeout   time.Duration
)

func init() {
	addServeOptions(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the editor over MCP on stdin/stdout",
	Long:  "Serve the editor over MCP on stdin/stdout. This is the default when no subcommand is given.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func addServeOptions(command *cobra.Command) {
	addPreviewOptions(command)
	command.Flags().DurationVar(&openTimeout, "open-timeout", server.DefaultConfig().OpenTimeout, "How long editor_open waits for an image to decode.")
}

func addPreviewOptions(command *cobra.Command) {
	def := server.DefaultConfig()
	command.Flags().StringVar(&previewMax, "preview-max", envOr("PHOTO_EDITOR_PREVIEW_MAX", fmt.Sprintf("%dx%d", def.PreviewMaxWidth, def.PreviewMaxHeight)), "Largest display size as WxH. Crop coordinates are authored in display pixels.")
	command.Flags().StringVar(&interpolation, "interpolation", envOr("PHOTO_EDITOR_INTERPOLATION", def.Interpolation), "Resampler: "+strings.Join(editor.InterpolationNames(), ", ")+".")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := serverConfig()
	if err != nil {
		return newExitCodeError(err, ExitCodeInvalidArguments)
	}

	srv, err := server.NewWithConfig(cfg, logger)
	if err != nil {
		return newExitCodeError(err, ExitCodeInvalidArguments)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("photo editor MCP server starting",
		"version", Version,
		"commit", GitCommit,
		"preview_max", previewMax,
		"interpolation", cfg.Interpolation,
	)

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return newExitCodeError(fmt.Errorf("server error: %w", err), ExitCodeServerError)
	}
	return nil
}

// serverConfig builds the server configuration from the command flags.
func serverConfig() (server.Config, error) {
	w, h, err := parseSize(previewMax)
	if err != nil {
		return server.Config{}, fmt.Errorf("invalid --preview-max: %w", err)
	}
	if _, err := editor.ParseInterpolator(interpolation); err != nil {
		return server.Config{}, err
	}
	return server.Config{
		PreviewMaxWidth:  w,
		PreviewMaxHeight: h,
		Interpolation:    interpolation,
		OpenTimeout:      openTimeout,
	}, nil
}

// parseSize parses a "WxH" size. Both sides must be positive.
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q is not WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q must be positive", s)
	}
	return w, h, nil
}
