package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/cache"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/events"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/observability"
)

const (
	defaultBlockLimit = 20
	maxListLimit      = 100
)

// ExplorerService serves the block and transaction explorer panels.
type ExplorerService struct {
	source   ExplorerSource
	fallback ExplorerSource
	cache    *cache.Cache
	cacheTTL time.Duration
	policy   fallbackPolicy
}

// ExplorerDependencies bundles construction inputs for the explorer facade.
type ExplorerDependencies struct {
	Source     ExplorerSource
	Fallback   ExplorerSource
	Cache      *cache.Cache
	CacheTTL   time.Duration
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewExplorerService builds the facade.
func NewExplorerService(deps ExplorerDependencies) *ExplorerService {
	return &ExplorerService{
		source:   deps.Source,
		fallback: deps.Fallback,
		cache:    deps.Cache,
		cacheTTL: deps.CacheTTL,
		policy: fallbackPolicy{
			domainName: "explorer",
			dispatcher: deps.Dispatcher,
			metrics:    deps.Metrics,
			logger:     deps.Logger,
		},
	}
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 || limit > maxListLimit {
		return fallback
	}
	return limit
}

// LatestBlocks returns the newest blocks, cached briefly.
func (s *ExplorerService) LatestBlocks(ctx context.Context, limit int) ([]domain.Block, error) {
	limit = clampLimit(limit, defaultBlockLimit)

	key := fmt.Sprintf("portal:cache:explorer:blocks:%d", limit)
	var cached []domain.Block
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	blocks, err := resolve(ctx, s.policy,
		func(ctx context.Context) ([]domain.Block, error) { return s.source.LatestBlocks(ctx, limit) },
		s.fallbackLatestBlocks(limit),
	)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, blocks, s.cacheTTL)
	return blocks, nil
}

func (s *ExplorerService) fallbackLatestBlocks(limit int) func(ctx context.Context) ([]domain.Block, error) {
	if s.fallback == nil {
		return nil
	}
	return func(ctx context.Context) ([]domain.Block, error) { return s.fallback.LatestBlocks(ctx, limit) }
}

// BlockByHeight returns one block.
func (s *ExplorerService) BlockByHeight(ctx context.Context, height uint64) (*domain.Block, error) {
	var fallback func(ctx context.Context) (*domain.Block, error)
	if s.fallback != nil {
		fallback = func(ctx context.Context) (*domain.Block, error) { return s.fallback.BlockByHeight(ctx, height) }
	}
	return resolve(ctx, s.policy,
		func(ctx context.Context) (*domain.Block, error) { return s.source.BlockByHeight(ctx, height) },
		fallback,
	)
}

// BlockByHash returns the block carrying the hash.
func (s *ExplorerService) BlockByHash(ctx context.Context, hash string) (*domain.Block, error) {
	var fallback func(ctx context.Context) (*domain.Block, error)
	if s.fallback != nil {
		fallback = func(ctx context.Context) (*domain.Block, error) { return s.fallback.BlockByHash(ctx, hash) }
	}
	return resolve(ctx, s.policy,
		func(ctx context.Context) (*domain.Block, error) { return s.source.BlockByHash(ctx, hash) },
		fallback,
	)
}

// BlockTransactions returns the transactions included in a block.
func (s *ExplorerService) BlockTransactions(ctx context.Context, height uint64) ([]domain.Transaction, error) {
	var fallback func(ctx context.Context) ([]domain.Transaction, error)
	if s.fallback != nil {
		fallback = func(ctx context.Context) ([]domain.Transaction, error) {
			return s.fallback.BlockTransactions(ctx, height)
		}
	}
	return resolve(ctx, s.policy,
		func(ctx context.Context) ([]domain.Transaction, error) { return s.source.BlockTransactions(ctx, height) },
		fallback,
	)
}

// Search resolves a free-form query to blocks or transactions.
func (s *ExplorerService) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	var fallback func(ctx context.Context) ([]domain.SearchResult, error)
	if s.fallback != nil {
		fallback = func(ctx context.Context) ([]domain.SearchResult, error) { return s.fallback.Search(ctx, query) }
	}
	return resolve(ctx, s.policy,
		func(ctx context.Context) ([]domain.SearchResult, error) { return s.source.Search(ctx, query) },
		fallback,
	)
}

// RecentTransactions returns the newest transactions, cached briefly.
func (s *ExplorerService) RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	limit = clampLimit(limit, defaultBlockLimit)

	key := fmt.Sprintf("portal:cache:explorer:txs:%d", limit)
	var cached []domain.Transaction
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	var fallback func(ctx context.Context) ([]domain.Transaction, error)
	if s.fallback != nil {
		fallback = func(ctx context.Context) ([]domain.Transaction, error) {
			return s.fallback.RecentTransactions(ctx, limit)
		}
	}

	txs, err := resolve(ctx, s.policy,
		func(ctx context.Context) ([]domain.Transaction, error) { return s.source.RecentTransactions(ctx, limit) },
		fallback,
	)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, txs, s.cacheTTL)
	return txs, nil
}

// TransactionByID returns one transaction.
func (s *ExplorerService) TransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var fallback func(ctx context.Context) (*domain.Transaction, error)
	if s.fallback != nil {
		fallback = func(ctx context.Context) (*domain.Transaction, error) { return s.fallback.TransactionByID(ctx, id) }
	}
	return resolve(ctx, s.policy,
		func(ctx context.Context) (*domain.Transaction, error) { return s.source.TransactionByID(ctx, id) },
		fallback,
	)
}
