package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/soiltex/internal/texture"
)

var systemsCmd = &cobra.Command{
	Use:   "systems",
	Short: "List available texture classification systems",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := texture.Default()
		for _, name := range reg.Names() {
			sys, err := reg.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %2d classes  %s\n",
				sys.Name, len(sys.Classes), sys.Description())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(systemsCmd)
}
