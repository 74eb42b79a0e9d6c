package company

import "context"

type Repository interface {
	Create(ctx context.Context, c Company) (*Company, error)
	Get(ctx context.Context, handle string) (*Company, error)
	List(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, handle string, u Update) (*Company, error)
	Remove(ctx context.Context, handle string) error
	Filter(ctx context.Context, f Filter) ([]Company, error)
}
