package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/apexql/internal/config"
	"github.com/leapstack-labs/apexql/pkg/schema"
)

// NewSchemaCommand creates the schema command with its subcommands.
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect or scaffold the object schema",
	}
	cmd.AddCommand(newSchemaInitCommand())
	cmd.AddCommand(newSchemaShowCommand())
	return cmd
}

func newSchemaInitCommand() *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter schema YAML file",
		Long: `Write the built-in standard objects to a YAML file as a starting
point for a custom schema. Edit the file and point schema_file at it in
apexql.yaml (or pass --schema).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", output)
				}
			}
			if err := schema.StandardObjects().SaveFile(output); err != nil {
				return fmt.Errorf("failed to write schema: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote starter schema to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "objects.yaml", "Output file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newSchemaShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [object]",
		Short: "Print the loaded schema catalog",
		Long: `Print the objects in the loaded schema. With an object name, print
that object's fields instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			s, err := loadSchema(cfg)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return showObject(cmd, s, args[0])
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Object", "Table", "Fields", "Children"})
			for _, obj := range s.Objects() {
				t.AppendRow(table.Row{
					obj.Name, obj.TableName, len(obj.Fields()), len(obj.ChildRelationships),
				})
			}
			t.Render()
			return nil
		},
	}
}

func showObject(cmd *cobra.Command, s *schema.Schema, name string) error {
	obj, ok := s.Object(name)
	if !ok {
		return fmt.Errorf("unknown object %q", name)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Object: %s (table %s)\n", obj.Name, obj.TableName)

	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Field", "Column", "Type", "References", "Nillable"})
	for _, f := range obj.Fields() {
		references := strings.Join(f.ReferenceTo, ", ")
		if f.RelationshipName != "" {
			references += " (" + f.RelationshipName + ")"
		}
		t.AppendRow(table.Row{f.Name, f.ColumnName, f.Type.String(), references, f.Nillable})
	}
	t.Render()

	if len(obj.ChildRelationships) > 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Child Relationship", "Object", "Foreign Key"})
		for _, rel := range obj.ChildRelationships {
			t.AppendRow(table.Row{rel.RelationshipName, rel.ChildObject, rel.Field})
		}
		t.Render()
	}
	return nil
}
