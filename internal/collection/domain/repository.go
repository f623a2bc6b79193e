package domain

import "context"

type Repository interface {
	// Upsert inserts the collection or updates the tag of the existing
	// (app_id, collection_id) row.
	Upsert(ctx context.Context, collection *Collection) error
	List(ctx context.Context, appIDs []string, appID, tag string) ([]Collection, error)
	Pool(ctx context.Context, appID, tag string) ([]Collection, error)
	Delete(ctx context.Context, appID, collectionID string) error
	AppExists(ctx context.Context, appID string) (bool, error)
}
