package postgres

import (
	"fmt"
	"strings"

	"github.com/tenantkit/tenantkit/internal/store"
)

// buildListQuery appends WHERE/ORDER BY/OFFSET/LIMIT clauses for a
// ListFilter to a base SELECT. A non-nil empty IncludeIDs produces
// `id = ANY('{}')`, which matches nothing, mirroring the filter contract.
func buildListQuery(base string, filter store.ListFilter) (string, []any) {
	return buildListQueryOrgColumn(base, filter, "org_id")
}

// buildListQueryOrgColumn is buildListQuery with the tenant column named
// explicitly; organizations are their own tenant, so their List filters on
// the id column.
func buildListQueryOrgColumn(base string, filter store.ListFilter, orgColumn string) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.OrgIDs != nil {
		clauses = append(clauses, orgColumn+" = ANY("+arg(filter.OrgIDs)+")")
	}
	if filter.IncludeIDs != nil {
		clauses = append(clauses, "id = ANY("+arg(filter.IncludeIDs)+")")
	}
	if len(filter.ExcludeIDs) > 0 {
		clauses = append(clauses, "NOT (id = ANY("+arg(filter.ExcludeIDs)+"))")
	}

	query := base
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	if filter.Skip > 0 {
		query += " OFFSET " + arg(filter.Skip)
	}
	if filter.Take > 0 {
		query += " LIMIT " + arg(filter.Take)
	}

	return query, args
}
