package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/sample"
	apperrors "github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/pkg/util/errorutil"
)

// SampleSource serves every dashboard domain from generated demo data.
type SampleSource struct {
	gen *sample.Generator
}

// NewSampleSource builds the sample data source.
func NewSampleSource(gen *sample.Generator) *SampleSource {
	return &SampleSource{gen: gen}
}

// LatestBlocks returns sample blocks.
func (s *SampleSource) LatestBlocks(_ context.Context, limit int) ([]domain.Block, error) {
	return s.gen.Blocks(limit), nil
}

// BlockByHeight returns the sample block at height.
func (s *SampleSource) BlockByHeight(_ context.Context, height uint64) (*domain.Block, error) {
	block := s.gen.Block(height)
	return &block, nil
}

// sampleHashWindow bounds how far back BlockByHash and Search scan: sample
// hashes are derived from heights, so only a recent window is resolvable.
const sampleHashWindow = 200

// BlockByHash scans the recent sample window for a block with the hash.
func (s *SampleSource) BlockByHash(_ context.Context, hash string) (*domain.Block, error) {
	for _, block := range s.gen.Blocks(sampleHashWindow) {
		if block.Hash == hash {
			return &block, nil
		}
	}
	return nil, apperrors.NewNotFound("block", map[string]any{"hash": hash})
}

// BlockTransactions returns the sample transactions in a block.
func (s *SampleSource) BlockTransactions(_ context.Context, height uint64) ([]domain.Transaction, error) {
	return s.gen.BlockTransactions(height), nil
}

// RecentTransactions returns sample transactions.
func (s *SampleSource) RecentTransactions(_ context.Context, limit int) ([]domain.Transaction, error) {
	return s.gen.Transactions(limit), nil
}

// TransactionByID returns a sample transaction for the id.
func (s *SampleSource) TransactionByID(_ context.Context, id string) (*domain.Transaction, error) {
	tx := s.gen.Transaction(id)
	return &tx, nil
}

// Search resolves a query against the sample ledger. A numeric query is a
// block height, a 0x-prefixed query is tried as a block hash before falling
// back to a transaction id, anything else is a transaction id.
func (s *SampleSource) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if height, err := strconv.ParseUint(query, 10, 64); err == nil {
		block := s.gen.Block(height)
		return []domain.SearchResult{{Kind: domain.SearchKindBlock, Block: &block}}, nil
	}
	if strings.HasPrefix(query, "0x") {
		if block, err := s.BlockByHash(ctx, query); err == nil {
			return []domain.SearchResult{{Kind: domain.SearchKindBlock, Block: block}}, nil
		}
	}
	tx := s.gen.Transaction(query)
	return []domain.SearchResult{{Kind: domain.SearchKindTransaction, Transaction: &tx}}, nil
}

// Validators returns the sample validator set.
func (s *SampleSource) Validators(_ context.Context) ([]domain.Validator, error) {
	return s.gen.Validators(), nil
}

// Validator returns one sample validator.
func (s *SampleSource) Validator(_ context.Context, id string) (*domain.Validator, error) {
	for _, v := range s.gen.Validators() {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, apperrors.NewNotFound("validator", map[string]any{"id": id})
}

// NetworkSummary aggregates the sample validator set.
func (s *SampleSource) NetworkSummary(_ context.Context) (*domain.NetworkSummary, error) {
	summary := s.gen.NetworkSummary()
	return &summary, nil
}

// Assets returns the sample tokenization registry.
func (s *SampleSource) Assets(_ context.Context) ([]domain.TokenAsset, error) {
	return s.gen.TokenAssets(), nil
}

// Asset returns one sample asset.
func (s *SampleSource) Asset(_ context.Context, id string) (*domain.TokenAsset, error) {
	for _, asset := range s.gen.TokenAssets() {
		if asset.ID == id || asset.Code == id {
			return &asset, nil
		}
	}
	return nil, apperrors.NewNotFound("asset", map[string]any{"id": id})
}

// Issuances returns sample issuance history.
func (s *SampleSource) Issuances(_ context.Context, assetID string, limit int) ([]domain.IssuanceRecord, error) {
	return s.gen.Issuances(assetID, limit), nil
}

// Checks returns sample compliance rows.
func (s *SampleSource) Checks(_ context.Context) ([]domain.ComplianceCheck, error) {
	return s.gen.ComplianceChecks(), nil
}

// Summary aggregates the sample compliance rows.
func (s *SampleSource) Summary(ctx context.Context) (*domain.ComplianceSummary, error) {
	checks, _ := s.Checks(ctx)
	summary := &domain.ComplianceSummary{}
	for _, check := range checks {
		switch check.Status {
		case domain.ComplianceStatusPassed:
			summary.Passed++
		case domain.ComplianceStatusFlagged:
			summary.Flagged++
		case domain.ComplianceStatusAcknowledged:
			summary.Acknowledged++
		}
	}
	return summary, nil
}

// Acknowledge marks a sample check acknowledged for the duration of the call.
func (s *SampleSource) Acknowledge(ctx context.Context, checkID string) (*domain.ComplianceCheck, error) {
	checks, _ := s.Checks(ctx)
	for _, check := range checks {
		if check.ID == checkID {
			check.Status = domain.ComplianceStatusAcknowledged
			check.CheckedAt = time.Now()
			return &check, nil
		}
	}
	return nil, apperrors.NewNotFound("compliance check", map[string]any{"id": checkID})
}

// Channels returns sample data channels.
func (s *SampleSource) Channels(_ context.Context) ([]domain.Channel, error) {
	return s.gen.Channels(), nil
}

// Profiles returns the network-configuration demo profiles.
func (s *SampleSource) Profiles(_ context.Context) ([]domain.NetworkProfile, error) {
	return s.gen.NetworkProfiles(), nil
}

// Profile returns one network-configuration demo profile.
func (s *SampleSource) Profile(_ context.Context, id string) (*domain.NetworkProfile, error) {
	for _, profile := range s.gen.NetworkProfiles() {
		if profile.ID == id {
			return &profile, nil
		}
	}
	return nil, apperrors.NewNotFound("network profile", map[string]any{"id": id})
}
