package domain

import (
	"context"
	"errors"

	"github.com/collectpay/collectpay/internal/access"
)

type BatchItem struct {
	CollectionID string `json:"collectionId"`
	Tag          string `json:"tag"`
}

type BatchUpsertRequest struct {
	AppID       string      `json:"appId"`
	Collections []BatchItem `json:"collections"`
}

// ItemError reports one rejected batch item; the rest of the batch commits.
type ItemError struct {
	CollectionID string `json:"collectionId"`
	Tag          string `json:"tag"`
	Reason       string `json:"reason"`
}

type BatchUpsertResponse struct {
	Saved  []Collection `json:"saved"`
	Errors []ItemError  `json:"errors"`
}

type ListRequest struct {
	AppID string
	Tag   string
}

type Service interface {
	BatchUpsert(ctx context.Context, scope access.Scope, req BatchUpsertRequest) (*BatchUpsertResponse, error)
	List(ctx context.Context, scope access.Scope, req ListRequest) ([]Collection, error)
	ListByApp(ctx context.Context, scope access.Scope, appID string) ([]Collection, error)
	PickRandom(ctx context.Context, scope access.Scope, appID, tag string) (*Collection, error)
	Delete(ctx context.Context, scope access.Scope, appID, collectionID string) error
}

var (
	ErrNotFound     = errors.New("collection_not_found")
	ErrForbidden    = errors.New("collection_forbidden")
	ErrMissingAppID = errors.New("missing_app_id")
	ErrInvalidTag   = errors.New("invalid_tag")
	ErrEmptyBatch   = errors.New("empty_batch")
	ErrUnknownApp   = errors.New("unknown_app")
	ErrEmptyPool    = errors.New("empty_collection_pool")
)
