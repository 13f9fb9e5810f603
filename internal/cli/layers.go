package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gosvg/inklayer/svgdom"
	"github.com/gosvg/inklayer/svgrender"
)

// newLayersCmd creates the layers command, which enumerates the layer
// labels of an SVG document in document order.
func newLayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layers [file]",
		Short: "List the layers of an SVG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := svgdom.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Layers in %s:\n", args[0])
			for i, name := range svgrender.ListLayers(doc) {
				fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, name)
			}
			return nil
		},
	}
}
