package cli

import (
	"github.com/seva/internal/config"
	"github.com/seva/internal/startup"
	"github.com/spf13/cobra"
)

// NewMigrateCommand applies pending goose migrations.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := openPool(config.Load())
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := startup.Migrate(pool); err != nil {
				return err
			}
			version, err := startup.MigrationVersion(pool)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), rootOpts.Format, map[string]any{"version": version})
		},
	}
}
