package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jikirun/jikirun/pkg/exercises"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			slugs := exercises.DefaultRegistry().Slugs()
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(slugs)
			}
			for _, slug := range slugs {
				fmt.Println(slug)
			}
			return nil
		},
	}
}
