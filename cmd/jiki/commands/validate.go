package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jikirun/jikirun/pkg/config"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [suite]",
		Short: "Validate a test-suite file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, err := config.NewLoader().Load(args[0])
			if err != nil {
				return err
			}

			tests := 0
			for _, task := range suite.Tasks {
				tests += len(task.Tests)
			}
			fmt.Printf("OK: exercise %q, %d task(s), %d test(s)\n", suite.Exercise, len(suite.Tasks), tests)
			return nil
		},
	}
}
