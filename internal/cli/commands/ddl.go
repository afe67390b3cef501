package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/apexql/internal/config"
	"github.com/leapstack-labs/apexql/pkg/ddl"
	"github.com/leapstack-labs/apexql/pkg/dialect"
)

// NewDDLCommand creates the ddl command.
func NewDDLCommand() *cobra.Command {
	var drop bool

	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Generate the DDL script for the schema",
		Long: `Generate CREATE TABLE and CREATE INDEX statements for every object in
the schema, in the configured dialect. With --drop, generate the DROP
TABLE script instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())

			d, ok := dialect.Get(cfg.Dialect)
			if !ok {
				return fmt.Errorf("unknown dialect %q", cfg.Dialect)
			}
			s, err := loadSchema(cfg)
			if err != nil {
				return err
			}

			gen := ddl.New(d)
			if drop {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), gen.DropSchema(s))
				return nil
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), gen.Schema(s))
			return nil
		},
	}

	cmd.Flags().BoolVar(&drop, "drop", false, "Generate DROP TABLE statements instead")
	return cmd
}
