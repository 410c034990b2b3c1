package service

import (
	"context"
	"errors"
	"strings"

	"github.com/seva/internal/model"
	"golang.org/x/sync/errgroup"
)

// searchLimit caps each of the three result lists.
const searchLimit = 20

var ErrEmptyQuery = errors.New("query must not be empty")

type GuruSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]model.Guru, error)
}

type EventSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]model.Event, error)
}

type BranchSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]model.Branch, error)
}

type SearchResult struct {
	Gurus    []model.Guru   `json:"gurus"`
	Events   []model.Event  `json:"events"`
	Branches []model.Branch `json:"branches"`
}

// SearchService matches a free-text query against gurus, events and branches.
type SearchService struct {
	gurus    GuruSearcher
	events   EventSearcher
	branches BranchSearcher
}

func NewSearchService(gurus GuruSearcher, events EventSearcher, branches BranchSearcher) *SearchService {
	return &SearchService{gurus: gurus, events: events, branches: branches}
}

// Search runs the three lookups concurrently.
func (s *SearchService) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	res := &SearchResult{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.Gurus, err = s.gurus.Search(gctx, query, searchLimit)
		return err
	})
	g.Go(func() (err error) {
		res.Events, err = s.events.Search(gctx, query, searchLimit)
		return err
	})
	g.Go(func() (err error) {
		res.Branches, err = s.branches.Search(gctx, query, searchLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if res.Gurus == nil {
		res.Gurus = []model.Guru{}
	}
	if res.Events == nil {
		res.Events = []model.Event{}
	}
	if res.Branches == nil {
		res.Branches = []model.Branch{}
	}
	return res, nil
}
