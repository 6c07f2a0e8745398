package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "migrate",
		Short:         "Create the quotes and opportunities storage if missing",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := rootOpts.Build(ctx)
			if err != nil {
				return err
			}
			defer c.Close(ctx)

			if err := c.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate %s store: %w", c.Config.StoreDriver, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s store ready\n", c.Config.StoreDriver)
			return nil
		},
	}
}
