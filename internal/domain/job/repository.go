package job

import "context"

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Get(ctx context.Context, id int) (*Job, error)
	List(ctx context.Context) ([]Job, error)
	Update(ctx context.Context, id int, u Update) (*Job, error)
	Remove(ctx context.Context, id int) error
	Filter(ctx context.Context, f Filter) ([]Job, error)
	ListByCompany(ctx context.Context, handle string) ([]Job, error)
}
