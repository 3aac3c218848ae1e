package types

import "time"

// OrderTypeAll is the sentinel filter value meaning "do not filter by
// order type".
const OrderTypeAll = "all"

// Filters narrows a record query. From/To apply to CreatedAt and only take
// effect when both are set. OrderType filters on the records' orderType
// data field unless it is empty or OrderTypeAll. Search is applied in
// memory, after flattening, against every non-reserved field.
type Filters struct {
	Search    string `json:"search,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	OrderType string `json:"orderType,omitempty"`
}

// Pagination selects a page of flattened records. Pages are 1-based.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// DefaultPagination mirrors the page size the table UI requests.
var DefaultPagination = Pagination{Page: 1, PageSize: 50}

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sorting overrides the default created_at descending row order.
type Sorting struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// RowFilter is the storage-level slice of a query: the parts the backend
// can answer with SQL. The date range only applies when both bounds are
// set; a nil Sort means created_at descending.
type RowFilter struct {
	From      time.Time
	To        time.Time
	OrderType string
	Sort      *Sorting
}

// PageInfo describes the pagination of a query result. Total and PageCount
// are in flattened-record units, not storage rows: an array row with five
// items contributes five toward Total.
type PageInfo struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
	PageCount int `json:"pageCount"`
}

// ZeroPageInfo is the pagination reported with a failed query: the page the
// caller asked for, nothing in it.
func ZeroPageInfo(p Pagination) PageInfo {
	return PageInfo{Page: p.Page, PageSize: p.PageSize}
}
