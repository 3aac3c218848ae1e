// Schema commands: manage a tenant's model definitions.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lupapyme/registro/pkg/types"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage model definitions",
}

var schemaShowCmd = &cobra.Command{
	Use:   "show <tipo>",
	Short: "Show the definition for a record type",
	Long: `Show prints the tenant's model definition for a record type. When no
definition is stored the built-in default is shown, the same one the query
surface serves.

Example:
  registro schema show producto --tenant acme`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		svc, _, cleanup, err := attachService()
		if err != nil {
			sysErr("schema show", err)
		}
		defer cleanup()

		res := svc.GetDefinition(tenant, args[0])
		if flagJSON {
			return printJSON(res)
		}
		printDefinition(res.Data)
		return nil
	},
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tenant's definitions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		svc, _, cleanup, err := attachService()
		if err != nil {
			sysErr("schema list", err)
		}
		defer cleanup()

		defs, err := svc.ListDefinitions(tenant)
		if err != nil {
			sysErr("schema list", err)
		}
		if flagJSON {
			return printJSON(defs)
		}
		for _, def := range defs {
			fmt.Printf("%s  %s  (%d fields)\n", def.ID, def.Tipo, len(def.Campos))
		}
		return nil
	},
}

var schemaCreateCmd = &cobra.Command{
	Use:   "create <tipo> <campos-json>",
	Short: "Create a definition",
	Long: `Create stores a new model definition for the tenant. Campos is a JSON
array of field descriptors.

Example:
  registro schema create producto '[{"name":"nombre","label":"Nombre","type":"string","order":1}]' --tenant acme`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		var campos []types.FieldDef
		if err := json.Unmarshal([]byte(args[1]), &campos); err != nil {
			userErr("schema create", "campos must be a JSON array of fields: "+err.Error())
		}

		svc, _, cleanup, err := attachService()
		if err != nil {
			sysErr("schema create", err)
		}
		defer cleanup()

		res := svc.CreateDefinition(tenant, args[0], campos)
		if flagJSON {
			return printJSON(res)
		}
		if !res.Success {
			userErr("schema create", res.Error)
		}
		fmt.Println("Created definition", res.Data.ID)
		return nil
	},
}

var schemaFieldsCmd = &cobra.Command{
	Use:   "fields <definition-id> <campos-json>",
	Short: "Replace a definition's field list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var campos []types.FieldDef
		if err := json.Unmarshal([]byte(args[1]), &campos); err != nil {
			userErr("schema fields", "campos must be a JSON array of fields: "+err.Error())
		}

		svc, _, cleanup, err := attachService()
		if err != nil {
			sysErr("schema fields", err)
		}
		defer cleanup()

		res := svc.ReplaceDefinitionFields(args[0], campos)
		if flagJSON {
			return printJSON(res)
		}
		if !res.Success {
			userErr("schema fields", res.Error)
		}
		fmt.Println("Updated definition", res.Data.ID)
		return nil
	},
}

var schemaDeleteCmd = &cobra.Command{
	Use:   "delete <definition-id>",
	Short: "Delete a definition",
	Long: `Delete removes a definition. Records of its record type stay behind;
queries over them fall back to the built-in default definition.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := attachService()
		if err != nil {
			sysErr("schema delete", err)
		}
		defer cleanup()

		res := svc.DeleteDefinition(args[0])
		if flagJSON {
			return printJSON(res)
		}
		if !res.Success {
			userErr("schema delete", res.Error)
		}
		fmt.Println("Deleted definition", args[0])
		return nil
	},
}

func init() {
	schemaCmd.AddCommand(schemaShowCmd)
	schemaCmd.AddCommand(schemaListCmd)
	schemaCmd.AddCommand(schemaCreateCmd)
	schemaCmd.AddCommand(schemaFieldsCmd)
	schemaCmd.AddCommand(schemaDeleteCmd)
}

// printDefinition prints a definition in human-readable format.
func printDefinition(def *types.ModelDefinition) {
	if def.ID != "" {
		fmt.Printf("ID:     %s\n", def.ID)
	} else {
		fmt.Println("ID:     (default definition)")
	}
	fmt.Printf("Tenant: %s\n", def.TenantID)
	fmt.Printf("Tipo:   %s\n", def.Tipo)
	fmt.Println("Campos:")
	for _, c := range def.CamposInOrder() {
		required := ""
		if c.Required {
			required = "  required"
		}
		fmt.Printf("  %-16s %-10s %s%s\n", c.Name, c.Type, c.Label, required)
	}
}
