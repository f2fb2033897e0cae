package graphql

import (
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/dataset"
	"github.com/doctorew/pocket-morties/pkg/logging"
	"github.com/doctorew/pocket-morties/pkg/models"
	"github.com/doctorew/pocket-morties/pkg/query"
)

// Resolver maps GraphQL fields onto query engine calls. Every resolve
// fetches the dataset afresh; nothing is shared between requests.
type Resolver struct {
	source dataset.Source
	logger *zap.Logger
}

// NewResolver creates a resolver reading from source.
func NewResolver(source dataset.Source, logger *zap.Logger) *Resolver {
	return &Resolver{
		source: source,
		logger: logger.Named("graphql"),
	}
}

func (r *Resolver) fetch(p graphql.ResolveParams) ([]models.PocketMorty, error) {
	records, err := r.source.Fetch(p.Context)
	if err != nil {
		logging.WithContext(p.Context, r.logger).Error("Dataset fetch failed",
			zap.String("field", p.Info.FieldName),
			zap.Error(err))
		return nil, err
	}
	return records, nil
}

// PocketMorty resolves pocketMorty(id). An unknown id resolves to null.
func (r *Resolver) PocketMorty(p graphql.ResolveParams) (any, error) {
	records, err := r.fetch(p)
	if err != nil {
		return nil, err
	}

	id, _ := p.Args["id"].(int)
	m, ok := query.FindByID(records, id)
	if !ok {
		return nil, nil
	}
	return m, nil
}

// PocketMorties resolves the filtered, optionally sorted connection.
func (r *Resolver) PocketMorties(p graphql.ResolveParams) (any, error) {
	records, err := r.fetch(p)
	if err != nil {
		return nil, err
	}

	f := query.Filter{
		Types:      stringListArg(p.Args, "type"),
		Rarities:   stringListArg(p.Args, "rarity"),
		Dimensions: stringListArg(p.Args, "dimensions"),
		WhereFound: stringListArg(p.Args, "where_found"),
		BaseHP:     intArg(p.Args, "basehp"),
		BaseAtk:    intArg(p.Args, "baseatk"),
		BaseDef:    intArg(p.Args, "basedef"),
		BaseSpd:    intArg(p.Args, "basespd"),
		BaseXP:     intArg(p.Args, "basexp"),
		StatTotal:  intArg(p.Args, "stattotal"),
		AssetID:    stringArg(p.Args, "assetid"),
	}
	page := models.PageRequest{
		First: intArg(p.Args, "first"),
		After: stringValue(p.Args, "after"),
	}

	conn, err := query.Search(records, f, stringValue(p.Args, "sortBy"), page)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// SortedMorties resolves sortedMorties to the edges of one page.
func (r *Resolver) SortedMorties(p graphql.ResolveParams) (any, error) {
	// Validate before fetching so a bad key costs no upstream call.
	sortBy := stringValue(p.Args, "sortBy")
	if _, err := models.ParseSortKey(sortBy); err != nil {
		return nil, err
	}
	page := models.PageRequest{
		First: intArg(p.Args, "first"),
		Last:  intArg(p.Args, "last"),
		After: stringValue(p.Args, "after"),
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	records, err := r.fetch(p)
	if err != nil {
		return nil, err
	}

	conn, err := query.SortAndPage(records, sortBy, page)
	if err != nil {
		return nil, err
	}
	return conn.Edges, nil
}

// TopMortiesByStat resolves the highest records by stat, five by default.
func (r *Resolver) TopMortiesByStat(p graphql.ResolveParams) (any, error) {
	key, err := models.ParseSortKey(stringValue(p.Args, "stat"))
	if err != nil {
		return nil, err
	}
	page := models.PageRequest{First: intArg(p.Args, "first")}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	records, err := r.fetch(p)
	if err != nil {
		return nil, err
	}
	return query.Top(records, key, page.Size()), nil
}

// SortKeys lists the accepted sortBy values.
func (r *Resolver) SortKeys(p graphql.ResolveParams) (any, error) {
	keys := models.SortKeys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out, nil
}

func intArg(args map[string]any, name string) *int {
	v, ok := args[name].(int)
	if !ok {
		return nil
	}
	return &v
}

func stringArg(args map[string]any, name string) *string {
	v, ok := args[name].(string)
	if !ok {
		return nil
	}
	return &v
}

func stringValue(args map[string]any, name string) string {
	v, _ := args[name].(string)
	return v
}

func stringListArg(args map[string]any, name string) []string {
	raw, ok := args[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
