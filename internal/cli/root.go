package cli

import (
	"context"
	"fmt"

	"quote_rollup/internal/app"
	"quote_rollup/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// Builder wires the application container for a command run.
type Builder func(ctx context.Context) (*app.Container, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"
	Build  Builder
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the rollupctl root command. A nil build uses the
// environment configuration.
func NewRootCommand(build Builder) *cobra.Command {
	if build == nil {
		build = buildFromEnv
	}
	opts := &RootOptions{Build: build}

	cmd := &cobra.Command{
		Use:   "rollupctl",
		Short: "Operate the Won quote rollup",
		Long:  "Recompute and inspect the total of Won quote amounts kept on each opportunity.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRecomputeCommand(opts))
	cmd.AddCommand(NewShowOpportunityCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

func buildFromEnv(ctx context.Context) (*app.Container, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	return app.Build(ctx, cfg, log)
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
