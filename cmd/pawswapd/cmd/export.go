package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newExportCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the committed state under --home as genesis JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, closeDB, err := openApp(state)
			if err != nil {
				return err
			}
			defer closeDB()

			genesis, err := a.ExportGenesis(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(genesis)
		},
	}
}
