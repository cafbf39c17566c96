package cli

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/photo-editor-mcp/internal/editor"
	"github.com/ironsheep/photo-editor-mcp/internal/imaging"
	"github.com/spf13/cobra"
)

var (
	rotate     float64
	brightness float64
	contrast   float64
	saturation float64
	shiftR     int
	shiftG     int
	shiftB     int
	crop       string
)

func init() {
	addPreviewOptions(renderCmd)
	addEditOptions(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

func addEditOptions(command *cobra.Command) {
	id := editor.IdentityAdjustment()
	command.Flags().Float64VarP(&rotate, "rotate", "r", 0, "Clockwise rotation in degrees.")
	command.Flags().Float64Var(&brightness, "brightness", id.Brightness, "Brightness percent, 100 is unchanged.")
	command.Flags().Float64Var(&contrast, "contrast", id.Contrast, "Contrast percent, 100 is unchanged.")
	command.Flags().Float64Var(&saturation, "saturation", id.Saturation, "Saturation percent, 100 is unchanged and 0 is grayscale.")
	command.Flags().IntVar(&shiftR, "shift-r", 0, "Offset added to the red channel.")
	command.Flags().IntVar(&shiftG, "shift-g", 0, "Offset added to the green channel.")
	command.Flags().IntVar(&shiftB, "shift-b", 0, "Offset added to the blue channel.")
	command.Flags().StringVar(&crop, "crop", "", "Crop rectangle as x,y,width,height in display pixels (see --preview-max).")
}

var renderCmd = &cobra.Command{
	Use:   "render [input] [output]",
	Short: "Render an image through the editor into a PNG",
	Long:  "Render an image through the editor at full resolution and write it as PNG.\nThe crop rectangle is given in display pixels, the size the image is shown at when fitted into --preview-max.",
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(2)(cmd, args); err != nil {
			return newExitCodeError(err, ExitCodeInvalidArguments)
		}

		if _, err := os.Stat(args[0]); err != nil {
			return fmt.Errorf("could not open input file %s: %w", args[0], newExitCodeError(err, ExitCodeInvalidInput))
		}

		if err := imaging.ValidatePNGPath(args[1]); err != nil {
			return newExitCodeError(err, ExitCodeInvalidOutput)
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		maxW, maxH, err := parseSize(previewMax)
		if err != nil {
			return newExitCodeError(fmt.Errorf("invalid --preview-max: %w", err), ExitCodeInvalidArguments)
		}
		interp, err := editor.ParseInterpolator(interpolation)
		if err != nil {
			return newExitCodeError(err, ExitCodeInvalidArguments)
		}
		params, err := editParameters()
		if err != nil {
			return newExitCodeError(err, ExitCodeInvalidArguments)
		}

		cache := imaging.NewImageCache()
		pending := editor.LoadSource(cache.Decoder(args[0]), editor.Size{Width: maxW, Height: maxH})
		src, err := pending.Wait(cmd.Context())
		if err != nil {
			return newExitCodeError(fmt.Errorf("could not decode %s: %w", args[0], err), ExitCodeInvalidInput)
		}

		out, err := os.Create(args[1])
		if err != nil {
			return newExitCodeError(fmt.Errorf("could not create output file %s: %w", args[1], err), ExitCodeInvalidOutput)
		}

		size, err := editor.NewPipeline(interp).Export(out, src, params)
		if err != nil {
			out.Close()
			os.Remove(args[1])
			return newExitCodeError(fmt.Errorf("could not render %s: %w", args[0], err), ExitCodeRenderError)
		}
		if err := out.Close(); err != nil {
			return newExitCodeError(fmt.Errorf("could not write output file %s: %w", args[1], err), ExitCodeInvalidOutput)
		}

		cmd.Printf("Rendered %s into %s (%dx%d)\n", args[0], args[1], size.Width, size.Height)
		return nil
	},
}

// editParameters builds the edit parameters from the command flags.
func editParameters() (editor.EditParameters, error) {
	region, err := parseCrop(crop)
	if err != nil {
		return editor.EditParameters{}, err
	}
	return editor.DefaultParameters().
		WithCrop(region).
		WithRotation(rotate).
		WithColor(editor.ColorAdjustment{
			Brightness: brightness,
			Contrast:   contrast,
			Saturation: saturation,
			Shift:      editor.ChannelShift{R: shiftR, G: shiftG, B: shiftB},
		}), nil
}

// parseCrop parses "x,y,width,height". An empty string means no crop.
func parseCrop(s string) (editor.CropRegion, error) {
	if strings.TrimSpace(s) == "" {
		return editor.CropRegion{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return editor.CropRegion{}, fmt.Errorf("crop %q is not x,y,width,height", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return editor.CropRegion{}, fmt.Errorf("crop %q: %w", s, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return editor.CropRegion{}, fmt.Errorf("crop %q must be finite", s)
		}
		v[i] = f
	}
	return editor.CropRegion{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}
