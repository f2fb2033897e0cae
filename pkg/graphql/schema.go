// Package graphql exposes the Pocket Morty dataset through a GraphQL schema
// and serves it over HTTP.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/doctorew/pocket-morties/pkg/models"
)

// statFields lists the integer stat columns, which double as exact-match
// filter arguments on pocketMorties.
var statFields = []string{"basehp", "baseatk", "basedef", "basespd", "basexp", "stattotal"}

func newPocketMortyType() *graphql.Object {
	fields := graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.String},
		"type":        &graphql.Field{Type: graphql.String},
		"assetid":     &graphql.Field{Type: graphql.String},
		"evolution":   &graphql.Field{Type: graphql.NewList(graphql.Int)},
		"evolutions":  &graphql.Field{Type: graphql.NewList(graphql.Int)},
		"rarity":      &graphql.Field{Type: graphql.String},
		"dimensions":  &graphql.Field{Type: graphql.String},
		"where_found": &graphql.Field{Type: graphql.NewList(graphql.String)},
		"frontImage": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				m, ok := p.Source.(models.PocketMorty)
				if !ok {
					return nil, nil
				}
				return m.FrontImageURL(), nil
			},
		},
		"backImage": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				m, ok := p.Source.(models.PocketMorty)
				if !ok {
					return nil, nil
				}
				return m.BackImageURL(), nil
			},
		},
	}
	for _, name := range statFields {
		fields[name] = &graphql.Field{Type: graphql.Int}
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name:   "PocketMorty",
		Fields: fields,
	})
}

// NewSchema builds the executable schema backed by r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	mortyType := newPocketMortyType()

	edgeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PocketMortyEdge",
		Fields: graphql.Fields{
			"node":   &graphql.Field{Type: mortyType},
			"cursor": &graphql.Field{Type: graphql.String},
		},
	})

	pageInfoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PageInfo",
		Fields: graphql.Fields{
			"hasNextPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"endCursor":   &graphql.Field{Type: graphql.String},
		},
	})

	connectionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PocketMortyConnection",
		Fields: graphql.Fields{
			"edges":    &graphql.Field{Type: graphql.NewList(edgeType)},
			"pageInfo": &graphql.Field{Type: graphql.NewNonNull(pageInfoType)},
		},
	})

	stringList := graphql.NewList(graphql.String)
	searchArgs := graphql.FieldConfigArgument{
		"first":       &graphql.ArgumentConfig{Type: graphql.Int},
		"after":       &graphql.ArgumentConfig{Type: graphql.String},
		"type":        &graphql.ArgumentConfig{Type: stringList},
		"rarity":      &graphql.ArgumentConfig{Type: stringList},
		"dimensions":  &graphql.ArgumentConfig{Type: stringList},
		"where_found": &graphql.ArgumentConfig{Type: stringList},
		"sortBy":      &graphql.ArgumentConfig{Type: graphql.String},
		"assetid":     &graphql.ArgumentConfig{Type: graphql.String},
	}
	for _, name := range statFields {
		searchArgs[name] = &graphql.ArgumentConfig{Type: graphql.Int}
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"pocketMorty": &graphql.Field{
				Type: mortyType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.PocketMorty,
			},
			"pocketMorties": &graphql.Field{
				Type:    connectionType,
				Args:    searchArgs,
				Resolve: r.PocketMorties,
			},
			"sortedMorties": &graphql.Field{
				Type: graphql.NewList(edgeType),
				Args: graphql.FieldConfigArgument{
					"sortBy": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"first":  &graphql.ArgumentConfig{Type: graphql.Int},
					"last":   &graphql.ArgumentConfig{Type: graphql.Int},
					"after":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.SortedMorties,
			},
			"topMortiesByStat": &graphql.Field{
				Type: graphql.NewList(mortyType),
				Args: graphql.FieldConfigArgument{
					"stat":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"first": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.TopMortiesByStat,
			},
			"sortKeys": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
				Resolve: r.SortKeys,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}
