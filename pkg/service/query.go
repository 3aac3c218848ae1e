// The record query pipeline. Storage answers the tenant scope, the date
// range and the orderType filter; everything past that — flattening,
// search, pagination — runs in memory because the unit of pagination is
// the flattened record, not the stored row, and one row can expand to many
// records.
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/lupapyme/registro/pkg/types"
)

// dateFormats are the accepted From/To filter formats, tried in order.
var dateFormats = []string{time.RFC3339, "2006-01-02"}

// Query returns one page of the tenant's flattened records. Total and
// pageCount count flattened records after the search filter. Any failure
// reports an empty page with zeroed pagination, never an error.
func (s *Service) Query(tenantID string, p types.Pagination, f types.Filters, sort *types.Sorting) types.QueryResult {
	p = normalizePagination(p)

	filter, err := rowFilter(f, sort)
	if err != nil {
		s.logger.Warn("invalid query filter for tenant %s: %s", tenantID, err)
		return queryFailure(p, "invalid filter")
	}

	rows, err := s.records.FindMany(tenantID, filter)
	if err != nil {
		s.logger.Error("fetching records for tenant %s: %s", tenantID, err)
		return queryFailure(p, "could not fetch records")
	}

	flat := s.flattenAll(tenantID, rows)

	if search := strings.TrimSpace(f.Search); search != "" {
		flat = filterBySearch(flat, search)
	}

	total := len(flat)
	pageCount := (total + p.PageSize - 1) / p.PageSize

	start := (p.Page - 1) * p.PageSize
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}

	return types.QueryResult{
		Success: true,
		Data:    flat[start:end],
		Pagination: types.PageInfo{
			Page:      p.Page,
			PageSize:  p.PageSize,
			Total:     total,
			PageCount: pageCount,
		},
	}
}

// flattenAll flattens every row, resolving definitions per tipo on demand
// for positional rows. A missing definition degrades to empty fields;
// the row still shows up.
func (s *Service) flattenAll(tenantID string, rows []*types.Registro) []types.FlatRecord {
	defs := map[string]*types.ModelDefinition{}
	flat := []types.FlatRecord{}
	for _, reg := range rows {
		var def *types.ModelDefinition
		if reg.Data.Encoding() == types.EncodingPositional {
			s.logger.Warn("registro %s uses the deprecated positional encoding; run a migration", reg.ID)
			var ok bool
			if def, ok = defs[reg.Tipo]; !ok {
				var err error
				def, err = s.definitions.Get(tenantID, reg.Tipo)
				if err != nil {
					s.logger.Warn("no definition for tipo %s, positional registro %s flattens without fields", reg.Tipo, reg.ID)
					def = nil
				}
				defs[reg.Tipo] = def
			}
		}
		flat = append(flat, FlattenRow(reg, def)...)
	}
	return flat
}

// filterBySearch keeps records where any data field's string form contains
// the term, case-insensitively. Bookkeeping fields never match, including
// payload keys that collide with their names.
func filterBySearch(records []types.FlatRecord, term string) []types.FlatRecord {
	needle := strings.ToLower(term)
	out := []types.FlatRecord{}
	for _, rec := range records {
		for name, value := range rec.Fields {
			if types.ReservedFieldNames[name] {
				continue
			}
			if strings.Contains(strings.ToLower(fmt.Sprintf("%v", value)), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// rowFilter converts the wire-level filters into the storage filter. The
// date range only applies when both bounds parse.
func rowFilter(f types.Filters, sort *types.Sorting) (types.RowFilter, error) {
	filter := types.RowFilter{OrderType: f.OrderType, Sort: sort}
	if f.From != "" && f.To != "" {
		from, err := parseDate(f.From)
		if err != nil {
			return filter, fmt.Errorf("parsing from date: %w", err)
		}
		to, err := parseDate(f.To)
		if err != nil {
			return filter, fmt.Errorf("parsing to date: %w", err)
		}
		filter.From = from
		filter.To = to
	}
	return filter, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func normalizePagination(p types.Pagination) types.Pagination {
	if p.Page < 1 {
		p.Page = types.DefaultPagination.Page
	}
	if p.PageSize < 1 {
		p.PageSize = types.DefaultPagination.PageSize
	}
	return p
}

func queryFailure(p types.Pagination, msg string) types.QueryResult {
	return types.QueryResult{
		Success:    false,
		Data:       []types.FlatRecord{},
		Pagination: types.ZeroPageInfo(p),
		Error:      msg,
	}
}
