package cli

import (
	"fmt"
	"strconv"

	"github.com/ironsheep/photo-editor-mcp/internal/editor"
	"github.com/spf13/cobra"
)

var angle float64

func init() {
	boundsCmd.Flags().Float64VarP(&angle, "angle", "a", 0, "Rotation in degrees. Negative values need the --angle=-30 form.")
	rootCmd.AddCommand(boundsCmd)
}

var boundsCmd = &cobra.Command{
	Use:   "bounds [width] [height]",
	Short: "Print the canvas size of a rotated image",
	Long:  "Print the size of the axis-aligned box holding a width x height image rotated by --angle, as WxH.",
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(2)(cmd, args); err != nil {
			return newExitCodeError(err, ExitCodeInvalidArguments)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := parseDimension(args[0])
		if err != nil {
			return newExitCodeError(err, ExitCodeInvalidArguments)
		}
		h, err := parseDimension(args[1])
		if err != nil {
			return newExitCodeError(err, ExitCodeInvalidArguments)
		}

		b := editor.ResolveBounds(w, h, angle)
		cmd.Printf("%dx%d\n", b.Width, b.Height)
		return nil
	},
}

func parseDimension(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid dimension %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("dimension %q must not be negative", s)
	}
	return v, nil
}
