package cli

import (
	"github.com/spf13/cobra"
)

type ShowOpportunityOptions struct {
	*RootOptions
	ID string
}

func NewShowOpportunityCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOpportunityOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "show-opportunity",
		Short:         "Print an opportunity and its Won quote total",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := opts.Build(ctx)
			if err != nil {
				return err
			}
			defer c.Close(ctx)

			opp, err := c.Opportunities.GetByID(ctx, opts.ID)
			if err != nil {
				return err
			}
			return writeOpportunity(cmd.OutOrStdout(), opts.Format, opp)
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "opportunity id")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
