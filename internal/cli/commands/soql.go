package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/apexql/internal/config"
	"github.com/leapstack-labs/apexql/pkg/convert"
	"github.com/leapstack-labs/apexql/pkg/parser"
)

// NewSoqlCommand creates the soql command.
func NewSoqlCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "soql [query]",
		Short: "Translate a SOQL query to SQL",
		Long: `Translate a SOQL query to SQL for the configured dialect.

The query is taken from the argument, or read from stdin when no
argument is given:

  apexql soql "SELECT Id, Name FROM Account WHERE Name = :name"
  echo "SELECT Id FROM Contact" | apexql soql --dialect sqlite`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source string
			if len(args) == 1 {
				source = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read query from stdin: %w", err)
				}
				source = string(data)
			}
			source = strings.TrimSpace(source)
			if source == "" {
				return fmt.Errorf("no query given")
			}

			cfg := config.FromContext(cmd.Context())
			convCfg, err := conversionConfig(cfg)
			if err != nil {
				return err
			}
			s, err := loadSchema(cfg)
			if err != nil {
				return err
			}

			query, err := parser.ParseQuery(source)
			if err != nil {
				return fmt.Errorf("failed to parse query: %w", err)
			}

			result, err := convert.Convert(query, s, convCfg)
			if err != nil {
				return err
			}

			renderConversion(cmd.OutOrStdout(), result)
			return nil
		},
	}
}
