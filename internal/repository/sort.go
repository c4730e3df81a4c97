// Package repository provides data access layer implementations for the
// application.
package repository

// Sort keys recognized by the note listing. Anything else falls back to
// DefaultSortKey.
const (
	SortCreatedOldest = "created_time_oldest"
	SortSummaryAsc    = "summary_asc"
	SortSummaryDesc   = "summary_desc"
	SortSpeciesAsc    = "species_asc"
	SortSpeciesDesc   = "species_desc"
	SortEmailAsc      = "email_asc"
	SortEmailDesc     = "email_desc"

	// DefaultSortKey orders by descending creation recency.
	DefaultSortKey = "created_time_latest"
)

// ResolveSort maps a client-supplied sort key to a stable ORDER BY clause.
// The resolved key is returned alongside the clause so the caller can echo
// the active sort back to the UI; unrecognized or absent keys resolve to the
// default ordering.
func ResolveSort(sortKey string) (clause, resolvedKey string) {
	switch sortKey {
	case SortCreatedOldest:
		return "notes.created_date ASC, notes.created_time ASC", SortCreatedOldest
	case SortSummaryAsc:
		return "notes.summary ASC", SortSummaryAsc
	case SortSummaryDesc:
		return "notes.summary DESC", SortSummaryDesc
	case SortSpeciesAsc:
		return "species.name ASC, species.scientific_name ASC", SortSpeciesAsc
	case SortSpeciesDesc:
		return "species.name DESC, species.scientific_name DESC", SortSpeciesDesc
	case SortEmailAsc:
		return "users.email ASC, notes.created_date DESC, notes.created_time DESC", SortEmailAsc
	case SortEmailDesc:
		return "users.email DESC, notes.created_date DESC, notes.created_time DESC", SortEmailDesc
	default:
		return "notes.created_date DESC, notes.created_time DESC", DefaultSortKey
	}
}
