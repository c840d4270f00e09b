package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arden-renewables/sitescope/internal/ingest"
	"github.com/arden-renewables/sitescope/internal/store"
)

var loadType string

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a constraint dataset file into the store",
	Long:  "Parses a KML, KMZ, GeoJSON, or shapefile and inserts every feature as the given constraint type.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		if _, ok := cat.ByID(loadType); !ok {
			return fmt.Errorf("unknown constraint type %q, see `sitescope catalog`", loadType)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		fc, err := ingest.ParseFile(args[0])
		if err != nil {
			return err
		}

		var inserted, failed int
		for _, f := range fc.Features {
			err := st.InsertFeature(ctx, store.ConstraintFeature{
				Type:       loadType,
				Name:       f.Name,
				Geometry:   f.Geometry,
				Properties: f.Properties,
			})
			if err != nil {
				failed++
				zap.L().Warn("load: feature not inserted", zap.String("name", f.Name), zap.Error(err))
				continue
			}
			inserted++
		}

		fmt.Printf("inserted %d feature(s) as %s", inserted, loadType)
		if failed > 0 {
			fmt.Printf(", %d failed", failed)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadType, "type", "", "constraint type id for the loaded features")
	_ = loadCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(loadCmd)
}
