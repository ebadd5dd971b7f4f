package resolvers

import (
	"context"
	"encoding/json"
	"time"

	"storefront.GO/graphql"
	gqlregistry "storefront.GO/graphql/registry"
	"storefront.GO/model/entity"
	"storefront.GO/service/catalog"
	"storefront.GO/service/session"
)

// QueryResolver is the single resolver for all Query fields.
// Methods live in product.go, catalog.go, deals.go.
// New Query fields: use RegisterSchemaExtension + add method on QueryResolver,
// or use _extension for fully dynamic resolvers.
type QueryResolver struct {
	store    *catalog.Store
	sessions *session.Registry
	phone    string
	now      func() time.Time
}

// NewQueryResolver builds the root resolver. sessions may be nil, in which
// case session-bound queries fall back to the default filter state.
func NewQueryResolver(store *catalog.Store, sessions *session.Registry, phone string) *QueryResolver {
	return &QueryResolver{store: store, sessions: sessions, phone: phone, now: time.Now}
}

func (r *QueryResolver) session(ctx context.Context) (*session.Session, error) {
	id := graphql.SessionIDFromContext(ctx)
	if id == "" || r.sessions == nil {
		return nil, nil
	}
	return r.sessions.Get(id)
}

func (r *QueryResolver) baseState(ctx context.Context) (entity.FilterState, error) {
	sess, err := r.session(ctx)
	if err != nil {
		return entity.FilterState{}, err
	}
	if sess == nil {
		return entity.DefaultFilterState(), nil
	}
	return sess.Filters(), nil
}

// Extension dispatches to registered custom resolvers.
func (r *QueryResolver) Extension(ctx context.Context, args graphql.ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		if err := json.Unmarshal([]byte(*args.Args), &m); err != nil {
			return nil, err
		}
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := gqlregistry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
