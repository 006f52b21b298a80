package commands

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"

	"github.com/haivivi/tonegen/pkg/cli"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of generate request files",
	Long: `Print the JSON Schema describing files accepted by 'tonegen generate -f'.

Examples:
  tonegen schema > tone.schema.json
  tonegen schema -q '.properties | keys'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := jsonschema.For[GenerateRequest](nil)
		if err != nil {
			return err
		}
		// Always JSON: the schema type only implements json.Marshaler.
		return cli.Output(schema, cli.OutputOptions{
			Format: cli.FormatJSON,
			Query:  queryExpr,
		})
	},
}
