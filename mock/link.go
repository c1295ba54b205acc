package mock

import (
	"context"

	"github.com/fwojciec/poiscout"
)

var _ poiscout.LinkService = (*LinkService)(nil)

// LinkService is a mock implementation of poiscout.LinkService.
type LinkService struct {
	CreateLinksFn func(ctx context.Context, crawlID string, links []poiscout.LinkReport) error
	FindLinksFn   func(ctx context.Context, filter poiscout.LinkFilter) ([]*poiscout.LinkRecord, error)
}

func (s *LinkService) CreateLinks(ctx context.Context, crawlID string, links []poiscout.LinkReport) error {
	return s.CreateLinksFn(ctx, crawlID, links)
}

func (s *LinkService) FindLinks(ctx context.Context, filter poiscout.LinkFilter) ([]*poiscout.LinkRecord, error) {
	return s.FindLinksFn(ctx, filter)
}
