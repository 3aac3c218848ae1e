// Record commands: create, get, update and delete single records.
// Record IDs may be composite (rowID-index) to address one item of an
// array-stored row.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lupapyme/registro/pkg/types"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage records",
}

var recordCreateCmd = &cobra.Command{
	Use:   "create <tipo> <data-json>",
	Short: "Create a record",
	Long: `Create stores a new record. Data is a JSON object, or a JSON array of
objects for a row that expands into several records.

Example:
  registro record create producto '{"nombre":"Café","precio":5990}' --tenant acme`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		data, err := parseDataArg(args[1])
		if err != nil {
			userErr("record create", err.Error())
		}

		svc, _, cleanup, err := attachService()
		if err != nil {
			sysErr("record create", err)
		}
		defer cleanup()

		res := svc.Create(tenant, args[0], data)
		if flagJSON {
			return printJSON(res)
		}
		if !res.Success {
			userErr("record create", res.Error)
		}
		fmt.Println("Created record", res.ID)
		return nil
	},
}

var recordGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Retrieve a record by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		svc, _, cleanup, err := attachService()
		if err != nil {
			sysErr("record get", err)
		}
		defer cleanup()

		res := svc.Get(args[0], tenant)
		if flagJSON {
			return printJSON(res)
		}
		if !res.Success {
			userErr("record get", res.Error)
		}
		printRecord(res.Data)
		return nil
	},
}

var recordUpdateCmd = &cobra.Command{
	Use:   "update <id> <patch-json>",
	Short: "Update a record",
	Long: `Update modifies a record. With a composite ID targeting an item of an
array row the patch is merged into that item; otherwise the patch replaces
the record's data entirely.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		var patch map[string]any
		if err := json.Unmarshal([]byte(args[1]), &patch); err != nil {
			userErr("record update", "patch must be a JSON object: "+err.Error())
		}

		svc, _, cleanup, err := attachService()
		if err != nil {
			sysErr("record update", err)
		}
		defer cleanup()

		res := svc.Update(args[0], tenant, patch)
		if flagJSON {
			return printJSON(res)
		}
		if !res.Success {
			userErr("record update", res.Error)
		}
		fmt.Println("Updated record", args[0])
		return nil
	},
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record",
	Long: `Delete removes a record. With a composite ID the addressed item is
removed from its array row; removing the last item removes the row.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		svc, _, cleanup, err := attachService()
		if err != nil {
			sysErr("record delete", err)
		}
		defer cleanup()

		res := svc.Delete(args[0], tenant)
		if flagJSON {
			return printJSON(res)
		}
		if !res.Success {
			userErr("record delete", res.Error)
		}
		fmt.Println("Deleted record", args[0])
		return nil
	},
}

func init() {
	recordCmd.AddCommand(recordCreateCmd)
	recordCmd.AddCommand(recordGetCmd)
	recordCmd.AddCommand(recordUpdateCmd)
	recordCmd.AddCommand(recordDeleteCmd)
}

// printRecord prints a flattened record in human-readable format.
func printRecord(r *types.FlatRecord) {
	fmt.Printf("ID:      %s\n", r.ID)
	fmt.Printf("Tenant:  %s\n", r.TenantID)
	fmt.Printf("Created: %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	if r.Expanded() {
		fmt.Printf("Row:     %s (item %d)\n", r.OriginalID, r.ItemIndex)
	}
	if len(r.Fields) > 0 {
		fmt.Println("Fields:")
		for k, v := range r.Fields {
			fmt.Printf("  %s: %v\n", k, v)
		}
	}
}
