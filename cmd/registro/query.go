// Query command: paginated, filtered listing of a tenant's flattened
// records.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lupapyme/registro/pkg/types"
)

var (
	queryFlagSearch    string
	queryFlagFrom      string
	queryFlagTo        string
	queryFlagOrderType string
	queryFlagPage      int
	queryFlagPageSize  int
	queryFlagSort      string
	queryFlagDir       string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query a tenant's records",
	Long: `Query lists one page of the tenant's records, array rows expanded into
one record per item. Search matches any data field, case-insensitively.
The date range applies only when both --from and --to are given.

Example:
  registro query --tenant acme --search café --page 1 --page-size 20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant := requireTenant()
		svc, _, cleanup, err := attachService()
		if err != nil {
			sysErr("query", err)
		}
		defer cleanup()

		var sort *types.Sorting
		if queryFlagSort != "" {
			sort = &types.Sorting{Field: queryFlagSort, Direction: queryFlagDir}
		}

		res := svc.Query(tenant,
			types.Pagination{Page: queryFlagPage, PageSize: queryFlagPageSize},
			types.Filters{
				Search:    queryFlagSearch,
				From:      queryFlagFrom,
				To:        queryFlagTo,
				OrderType: queryFlagOrderType,
			},
			sort)
		if flagJSON {
			return printJSON(res)
		}
		if !res.Success {
			userErr("query", res.Error)
		}

		for _, rec := range res.Data {
			fmt.Printf("%s  %s\n", rec.ID, rec.CreatedAt.Format("2006-01-02"))
			for k, v := range rec.Fields {
				fmt.Printf("    %s: %v\n", k, v)
			}
		}
		fmt.Printf("page %d/%d, %d records\n",
			res.Pagination.Page, res.Pagination.PageCount, res.Pagination.Total)
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryFlagSearch, "search", "", "case-insensitive substring search over data fields")
	queryCmd.Flags().StringVar(&queryFlagFrom, "from", "", "start of the createdAt range (YYYY-MM-DD or RFC3339)")
	queryCmd.Flags().StringVar(&queryFlagTo, "to", "", "end of the createdAt range")
	queryCmd.Flags().StringVar(&queryFlagOrderType, "order-type", "", "filter on the orderType data field (\"all\" disables)")
	queryCmd.Flags().IntVar(&queryFlagPage, "page", 1, "page number, 1-based")
	queryCmd.Flags().IntVar(&queryFlagPageSize, "page-size", types.DefaultPagination.PageSize, "records per page")
	queryCmd.Flags().StringVar(&queryFlagSort, "sort", "", "sort field (default createdAt)")
	queryCmd.Flags().StringVar(&queryFlagDir, "dir", types.SortDesc, "sort direction: asc or desc")
}
