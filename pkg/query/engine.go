package query

import (
	"slices"

	"github.com/doctorew/pocket-morties/pkg/apperrors"
	"github.com/doctorew/pocket-morties/pkg/models"
)

// SortAndPage orders records by sortBy and returns one page of edges.
//
// In first mode (and by default) records are ordered by the key descending.
// In last mode they are ordered ascending and the page is taken from the
// head, which yields the "worst N" records lowest first. The sort is stable,
// so records with equal keys keep their input order.
func SortAndPage(records []models.PocketMorty, sortBy string, page models.PageRequest) (*models.Connection, error) {
	key, err := models.ParseSortKey(sortBy)
	if err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return window(sortRecords(records, key, page.IsLast()), page), nil
}

// Search runs the full filter, optional sort and window pipeline used by
// the pocketMorties query. With an empty sortBy the filtered records keep
// their input order and last mode is rejected.
func Search(records []models.PocketMorty, f Filter, sortBy string, page models.PageRequest) (*models.Connection, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	filtered := Apply(records, f)
	if sortBy == "" {
		if page.IsLast() {
			return nil, apperrors.InvalidArgument("last requires sortBy")
		}
		return window(filtered, page), nil
	}

	key, err := models.ParseSortKey(sortBy)
	if err != nil {
		return nil, err
	}
	return window(sortRecords(filtered, key, page.IsLast()), page), nil
}

// FindByID returns the record with the given id.
func FindByID(records []models.PocketMorty, id int) (models.PocketMorty, bool) {
	i := slices.IndexFunc(records, func(m models.PocketMorty) bool { return m.ID == id })
	if i < 0 {
		return models.PocketMorty{}, false
	}
	return records[i], true
}

// Top returns the count highest records by key.
func Top(records []models.PocketMorty, key models.SortKey, count int) []models.PocketMorty {
	sorted := sortRecords(records, key, false)
	return sorted[:min(count, len(sorted))]
}

func sortRecords(records []models.PocketMorty, key models.SortKey, ascending bool) []models.PocketMorty {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b models.PocketMorty) int {
		if ascending {
			return key.Compare(&a, &b)
		}
		return key.Compare(&b, &a)
	})
	return sorted
}

// window slices one page out of an already ordered sequence. An after
// cursor that is not present restarts from the beginning.
func window(sequence []models.PocketMorty, page models.PageRequest) *models.Connection {
	start := 0
	if page.After != "" {
		for i := range sequence {
			if models.CursorFor(sequence[i].ID) == page.After {
				start = i + 1
				break
			}
		}
	}

	end := min(start+page.Size(), len(sequence))
	edges := make([]models.Edge, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		edges = append(edges, models.Edge{
			Node:   sequence[i],
			Cursor: models.CursorFor(sequence[i].ID),
		})
	}

	conn := &models.Connection{
		Edges: edges,
		PageInfo: models.PageInfo{
			HasNextPage: end < len(sequence),
		},
	}
	if len(edges) > 0 {
		cursor := edges[len(edges)-1].Cursor
		conn.PageInfo.EndCursor = &cursor
	}
	return conn
}
