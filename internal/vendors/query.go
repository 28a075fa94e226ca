// internal/vendors/query.go
package vendors

import (
	"strings"

	"upkept-workers/internal/models"
)

// MaxQueries caps the number of search queries generated per service.
const MaxQueries = 5

// BuildVendorQueries produces the search strings used to look up vendors for
// a service, most specific first. Hints (asset location, install year, tags)
// are appended verbatim to the primary query. Duplicates are dropped and the
// result never exceeds MaxQueries entries.
func BuildVendorQueries(service models.ServiceProfile, ctx models.VendorSearchContext, hints []string) []string {
	base := strings.TrimSpace(ctx.City + " " + ctx.State)
	primary := service.PrimaryKeyword()
	category := string(service.Category)

	hintSuffix := ""
	if len(hints) > 0 {
		hintSuffix = " " + strings.Join(hints, " ")
	}

	queries := []string{
		primary + " " + base + hintSuffix,
		collapseSpaces(category + " " + service.Subcategory + " " + base),
	}

	if ctx.PropertyType != "" {
		queries = append(queries, primary+" "+base+" "+ctx.PropertyType)
	}

	if !service.Onsite {
		queries = append(queries,
			primary+" remote",
			collapseSpaces(category+" "+service.Subcategory+" remote"),
		)
	}

	if service.RequiresCredentials() {
		queries = append(queries, primary+" licensed insured "+base)
	}

	return dedupe(queries, MaxQueries)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func dedupe(in []string, limit int) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, limit)
	for _, q := range in {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out
}
