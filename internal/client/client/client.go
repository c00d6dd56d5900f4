package client

import (
	"context"

	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
	"github.com/dmitrijs2005/pantrykeeper/internal/report"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
)

// ListQuery narrows GET /api/items. Zero fields are not sent.
type ListQuery struct {
	Category         pantry.Category
	Search           string
	Status           string
	SortByExpiration bool
}

type Client interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error

	Categories(ctx context.Context) ([]pantry.Category, error)
	ListItems(ctx context.Context, q ListQuery) ([]pantry.Item, error)
	AddItem(ctx context.Context, item pantry.Item) (pantry.Item, error)
	UpdateItem(ctx context.Context, id string, patch pantry.Patch) (pantry.Item, error)
	DeleteItem(ctx context.Context, id string) error
	Expiring(ctx context.Context, days int) ([]pantry.Item, error)
	Summary(ctx context.Context, asOf timex.Date) (report.Report, error)
	UploadImage(ctx context.Context, id, contentType string, data []byte) (pantry.Item, error)
}
