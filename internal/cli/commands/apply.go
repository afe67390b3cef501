package commands

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/apexql/internal/adapter"
	"github.com/leapstack-labs/apexql/internal/config"
	"github.com/leapstack-labs/apexql/pkg/ddl"
	"github.com/leapstack-labs/apexql/pkg/dialect"
)

// NewApplyCommand creates the apply command.
func NewApplyCommand() *cobra.Command {
	var drop bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the generated DDL to the configured target database",
		Long: `Generate the DDL script for the schema and execute it against the
target database from apexql.yaml. With --drop, the DROP TABLE script is
executed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			logger := config.GetLogger(ctx)

			if cfg.Target == nil {
				return fmt.Errorf("no target configured; add a target section to apexql.yaml")
			}
			if err := cfg.Target.Validate(); err != nil {
				return err
			}

			// The DDL dialect follows the target, not the conversion dialect.
			d, ok := dialect.Get(cfg.Target.Type)
			if !ok {
				return fmt.Errorf("unknown target type %q", cfg.Target.Type)
			}
			s, err := loadSchema(cfg)
			if err != nil {
				return err
			}

			gen := ddl.New(d)
			script := gen.Schema(s)
			if drop {
				script = gen.DropSchema(s)
			}

			adapterCfg := adapter.Config{
				Type:     cfg.Target.Type,
				Database: cfg.Target.Database,
				Host:     cfg.Target.Host,
				Port:     cfg.Target.Port,
				User:     cfg.Target.User,
				Password: cfg.Target.Password,
				Options:  cfg.Target.Options,
			}
			a, err := adapter.New(adapterCfg, logger)
			if err != nil {
				return err
			}

			if err := a.Connect(ctx, adapterCfg); err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			runID := uuid.New().String()
			statements := splitStatements(script)
			logger.Info("applying schema",
				"run_id", runID,
				"target", cfg.Target.Type,
				"statements", len(statements))

			for i, stmt := range statements {
				if err := a.Exec(ctx, stmt); err != nil {
					logger.Error("statement failed",
						"run_id", runID, "statement", i+1, "error", err)
					return fmt.Errorf("statement %d of %d failed: %w", i+1, len(statements), err)
				}
				logger.Debug("statement applied", "run_id", runID, "statement", i+1)
			}

			logger.Info("schema applied", "run_id", runID)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %d statements to %s target\n",
				len(statements), cfg.Target.Type)
			return nil
		},
	}

	cmd.Flags().BoolVar(&drop, "drop", false, "Execute DROP TABLE statements instead")
	return cmd
}

// splitStatements splits a DDL script into individual statements. The
// generator never emits semicolons inside a statement.
func splitStatements(script string) []string {
	var statements []string
	for _, part := range strings.Split(script, ";") {
		stmt := strings.TrimSpace(part)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
