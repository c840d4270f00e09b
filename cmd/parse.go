package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arden-renewables/sitescope/internal/geometry"
	"github.com/arden-renewables/sitescope/internal/ingest"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a geometry file and print what it contains",
	Long:  "Parses a KML, KMZ, GeoJSON, or shapefile upload without storing anything. Useful for checking a boundary file before it goes near a project.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := ingest.ParseFile(args[0])
		if err != nil {
			return err
		}

		bbox, err := geometry.BoundingBox(fc)
		if err != nil {
			return err
		}

		fmt.Printf("%d feature(s)\n", len(fc.Features))
		for i, f := range fc.Features {
			wkt, err := geometry.WKT(f.Geometry)
			if err != nil {
				return err
			}
			name := f.Name
			if name == "" {
				name = "(unnamed)"
			}
			if len(wkt) > 96 {
				wkt = wkt[:93] + "..."
			}
			fmt.Printf("  %2d. %-24s %s\n", i+1, name, wkt)
		}
		fmt.Printf("bbox: %.5f,%.5f to %.5f,%.5f (center %.5f,%.5f)\n",
			bbox.West, bbox.South, bbox.East, bbox.North, bbox.Center[0], bbox.Center[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
