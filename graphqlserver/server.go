package graphqlserver

import (
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"storefront.GO/graphql"
	"storefront.GO/graphql/resolvers"
	"storefront.GO/service/catalog"
	"storefront.GO/service/session"
)

// NewSchema parses the schema (base + registered extensions) against a root
// resolver reading from store. sessions may be nil.
func NewSchema(store *catalog.Store, sessions *session.Registry, phone string) (*gql.Schema, error) {
	root := resolvers.NewQueryResolver(store, sessions, phone)
	return gql.ParseSchema(graphql.Schema(), root, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
