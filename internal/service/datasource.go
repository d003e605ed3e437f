package service

import (
	"context"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/upstream"
)

// Each dashboard facade depends on an abstract data source with two
// implementations: remote (the upstream dispatcher) and sample (generated
// demo data). Which one backs a facade is decided once at construction.

// ExplorerSource feeds the block/transaction explorer.
type ExplorerSource interface {
	LatestBlocks(ctx context.Context, limit int) ([]domain.Block, error)
	BlockByHeight(ctx context.Context, height uint64) (*domain.Block, error)
	BlockByHash(ctx context.Context, hash string) (*domain.Block, error)
	BlockTransactions(ctx context.Context, height uint64) ([]domain.Transaction, error)
	RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)
	TransactionByID(ctx context.Context, id string) (*domain.Transaction, error)
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// ValidatorSource feeds the validator dashboard.
type ValidatorSource interface {
	Validators(ctx context.Context) ([]domain.Validator, error)
	Validator(ctx context.Context, id string) (*domain.Validator, error)
	NetworkSummary(ctx context.Context) (*domain.NetworkSummary, error)
}

// TokenizationSource feeds the tokenization registry.
type TokenizationSource interface {
	Assets(ctx context.Context) ([]domain.TokenAsset, error)
	Asset(ctx context.Context, id string) (*domain.TokenAsset, error)
	Issuances(ctx context.Context, assetID string, limit int) ([]domain.IssuanceRecord, error)
}

// ComplianceSource feeds the compliance panel. Acknowledge is a write and is
// never served from fallback data.
type ComplianceSource interface {
	Checks(ctx context.Context) ([]domain.ComplianceCheck, error)
	Summary(ctx context.Context) (*domain.ComplianceSummary, error)
	Acknowledge(ctx context.Context, checkID string) (*domain.ComplianceCheck, error)
}

// ChannelSource feeds the channels view.
type ChannelSource interface {
	Channels(ctx context.Context) ([]domain.Channel, error)
}

// NetworkSource feeds the network-configuration demo.
type NetworkSource interface {
	Profiles(ctx context.Context) ([]domain.NetworkProfile, error)
	Profile(ctx context.Context, id string) (*domain.NetworkProfile, error)
}

// canFallBack reports whether sample data may substitute for err. Transport,
// server, and client failures qualify; authentication failures never do, so a
// logged-out state is not masked as empty-but-valid data.
func canFallBack(err error) bool {
	kind, ok := upstream.KindOf(err)
	if !ok {
		return false
	}
	switch kind {
	case upstream.KindTransport, upstream.KindServer, upstream.KindClient:
		return true
	default:
		return false
	}
}
