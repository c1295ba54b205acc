package mock

import (
	"context"

	"github.com/fwojciec/poiscout"
)

var _ poiscout.POIService = (*POIService)(nil)

// POIService is a mock implementation of poiscout.POIService.
type POIService struct {
	CreatePOIFn         func(ctx context.Context, poi *poiscout.POIRecord) error
	FindPOIByIDFn       func(ctx context.Context, id string) (*poiscout.POIRecord, error)
	FindPOIsFn          func(ctx context.Context, filter poiscout.POIFilter) ([]*poiscout.POIRecord, error)
	DeletePOIsByCrawlFn func(ctx context.Context, crawlID string) error
}

func (s *POIService) CreatePOI(ctx context.Context, poi *poiscout.POIRecord) error {
	return s.CreatePOIFn(ctx, poi)
}

func (s *POIService) FindPOIByID(ctx context.Context, id string) (*poiscout.POIRecord, error) {
	return s.FindPOIByIDFn(ctx, id)
}

func (s *POIService) FindPOIs(ctx context.Context, filter poiscout.POIFilter) ([]*poiscout.POIRecord, error) {
	return s.FindPOIsFn(ctx, filter)
}

func (s *POIService) DeletePOIsByCrawl(ctx context.Context, crawlID string) error {
	return s.DeletePOIsByCrawlFn(ctx, crawlID)
}
