package resolvers

import (
	"context"

	gqlmodels "storefront.GO/graphql/models"
	"storefront.GO/model/entity"
)

func (r *QueryResolver) Categories(ctx context.Context) ([]string, error) {
	if _, err := r.store.Catalog(); err != nil {
		return nil, err
	}
	return r.store.Categories(), nil
}

func (r *QueryResolver) AllTags(ctx context.Context) ([]string, error) {
	if _, err := r.store.Catalog(); err != nil {
		return nil, err
	}
	return r.store.AllTags(), nil
}

func (r *QueryResolver) SortOptions() []*gqlmodels.SortOption {
	out := make([]*gqlmodels.SortOption, 0, len(entity.SortOptions))
	for _, o := range entity.SortOptions {
		out = append(out, &gqlmodels.SortOption{Value: string(o.Value), Label: o.Label})
	}
	return out
}

// Status never errors so clients can poll it while the catalog loads.
func (r *QueryResolver) Status() *gqlmodels.CatalogStatus {
	st := &gqlmodels.CatalogStatus{
		IsLoading:     r.store.Loading(),
		Failed:        r.store.Failed(),
		Source:        r.store.SourceName(),
		ProductCount:  int32(len(r.store.Products())),
		CategoryCount: int32(len(r.store.Categories())),
	}
	if err := r.store.Err(); err != nil {
		msg := err.Error()
		st.Error = &msg
	}
	return st
}
