package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gosvg/inklayer/svgdom"
	"github.com/gosvg/inklayer/svgrender"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	layers []string // layer names or ids to export, in order
	output string   // output SVG path
}

// newExportCmd creates the export command, which copies the selected
// layers into a standalone SVG with one labeled group per layer.
func newExportCmd() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export layers of an SVG file to a new SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.layers, "layer", "l", nil, "layer name or id to export (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output SVG path")
	cmd.MarkFlagRequired("layer")
	cmd.MarkFlagRequired("output")

	return cmd
}

func runExport(cmd *cobra.Command, input string, opts *exportOpts) error {
	logger := loggerFromContext(cmd.Context())
	logger.Infof("Exporting %s", input)

	doc, err := svgdom.Load(input)
	if err != nil {
		return err
	}

	err = svgrender.ExportLayers(doc, opts.layers, opts.output)
	if errors.Is(err, svgrender.ErrNoDrawableElements) {
		logger.Warnf("No path or rect elements in the selected layers, nothing written")
		return nil
	}
	if err != nil {
		return err
	}

	logger.Infof("Exported %d layer(s) to %s", len(opts.layers), opts.output)
	return nil
}
