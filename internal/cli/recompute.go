package cli

import (
	"fmt"
	"strings"

	"quote_rollup/internal/domain/entities"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type RecomputeOptions struct {
	*RootOptions
	QuoteID string
}

// NewRecomputeCommand replays a status change of one quote through the
// rollup. Useful to repair a total after a failed or skipped run.
func NewRecomputeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecomputeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute the Won quote total of a quote's opportunity",
		Long: `Recompute the Won quote total of the opportunity a quote belongs to.

The quote is handled as if its status had just been updated.

Example:
  rollupctl recompute --quote-id 7d1f0c52-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecompute(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.QuoteID, "quote-id", "", "id of the quote whose opportunity is recomputed")
	_ = cmd.MarkFlagRequired("quote-id")

	return cmd
}

func runRecompute(cmd *cobra.Command, opts *RecomputeOptions) error {
	quoteID := strings.TrimSpace(opts.QuoteID)
	if quoteID == "" {
		return fmt.Errorf("--quote-id must not be empty")
	}

	ctx := cmd.Context()
	c, err := opts.Build(ctx)
	if err != nil {
		return err
	}
	defer c.Close(ctx)

	event := entities.NewQuoteUpdateEvent(quoteID, entities.QuoteAttrStatusCode)
	event.CorrelationID = uuid.NewString()

	result, err := c.Rollup.Handle(ctx, event)
	if err != nil {
		return err
	}
	return writeRollup(cmd.OutOrStdout(), opts.Format, result)
}
