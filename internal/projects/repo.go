package projects

import "context"

// Repo persists project records.
type Repo interface {
	Insert(ctx context.Context, record Record) (int64, error)
}
