package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/upstream"
)

// RemoteSource serves every dashboard domain from the upstream API through
// the authenticated dispatcher.
type RemoteSource struct {
	client *upstream.Client
}

// NewRemoteSource builds the remote data source.
func NewRemoteSource(client *upstream.Client) *RemoteSource {
	return &RemoteSource{client: client}
}

func limitQuery(limit int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// LatestBlocks fetches the newest blocks.
func (s *RemoteSource) LatestBlocks(ctx context.Context, limit int) ([]domain.Block, error) {
	var out struct {
		Blocks []domain.Block `json:"blocks"`
	}
	if err := s.client.Get(ctx, "/api/explorer/blocks", limitQuery(limit), &out); err != nil {
		return nil, err
	}
	return out.Blocks, nil
}

// BlockByHeight fetches one block.
func (s *RemoteSource) BlockByHeight(ctx context.Context, height uint64) (*domain.Block, error) {
	var block domain.Block
	if err := s.client.Get(ctx, "/api/explorer/blocks/"+strconv.FormatUint(height, 10), nil, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// BlockByHash fetches one block by its hash.
func (s *RemoteSource) BlockByHash(ctx context.Context, hash string) (*domain.Block, error) {
	var block domain.Block
	if err := s.client.Get(ctx, "/api/explorer/blocks/hash/"+url.PathEscape(hash), nil, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// BlockTransactions fetches the transactions included in a block.
func (s *RemoteSource) BlockTransactions(ctx context.Context, height uint64) ([]domain.Transaction, error) {
	var out struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	path := "/api/explorer/blocks/" + strconv.FormatUint(height, 10) + "/transactions"
	if err := s.client.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// RecentTransactions fetches the newest transactions.
func (s *RemoteSource) RecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	var out struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	if err := s.client.Get(ctx, "/api/explorer/transactions", limitQuery(limit), &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// TransactionByID fetches one transaction.
func (s *RemoteSource) TransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := s.client.Get(ctx, "/api/explorer/transactions/"+url.PathEscape(id), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Search asks the upstream explorer to resolve a free-form query.
func (s *RemoteSource) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	var out struct {
		Results []domain.SearchResult `json:"results"`
	}
	q := url.Values{}
	q.Set("q", query)
	if err := s.client.Get(ctx, "/api/explorer/search", q, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Validators fetches the validator set.
func (s *RemoteSource) Validators(ctx context.Context) ([]domain.Validator, error) {
	var out struct {
		Validators []domain.Validator `json:"validators"`
	}
	if err := s.client.Get(ctx, "/api/validators", nil, &out); err != nil {
		return nil, err
	}
	return out.Validators, nil
}

// Validator fetches one validator.
func (s *RemoteSource) Validator(ctx context.Context, id string) (*domain.Validator, error) {
	var v domain.Validator
	if err := s.client.Get(ctx, "/api/validators/"+url.PathEscape(id), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// NetworkSummary fetches validator-set aggregates.
func (s *RemoteSource) NetworkSummary(ctx context.Context) (*domain.NetworkSummary, error) {
	var summary domain.NetworkSummary
	if err := s.client.Get(ctx, "/api/validators/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Assets fetches the tokenization registry.
func (s *RemoteSource) Assets(ctx context.Context) ([]domain.TokenAsset, error) {
	var out struct {
		Assets []domain.TokenAsset `json:"assets"`
	}
	if err := s.client.Get(ctx, "/api/tokenization/assets", nil, &out); err != nil {
		return nil, err
	}
	return out.Assets, nil
}

// Asset fetches one registered asset.
func (s *RemoteSource) Asset(ctx context.Context, id string) (*domain.TokenAsset, error) {
	var asset domain.TokenAsset
	if err := s.client.Get(ctx, "/api/tokenization/assets/"+url.PathEscape(id), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// Issuances fetches the issuance history for an asset.
func (s *RemoteSource) Issuances(ctx context.Context, assetID string, limit int) ([]domain.IssuanceRecord, error) {
	var out struct {
		Issuances []domain.IssuanceRecord `json:"issuances"`
	}
	path := "/api/tokenization/assets/" + url.PathEscape(assetID) + "/issuances"
	if err := s.client.Get(ctx, path, limitQuery(limit), &out); err != nil {
		return nil, err
	}
	return out.Issuances, nil
}

// Checks fetches compliance panel rows.
func (s *RemoteSource) Checks(ctx context.Context) ([]domain.ComplianceCheck, error) {
	var out struct {
		Checks []domain.ComplianceCheck `json:"checks"`
	}
	if err := s.client.Get(ctx, "/api/compliance/checks", nil, &out); err != nil {
		return nil, err
	}
	return out.Checks, nil
}

// Summary fetches compliance counts.
func (s *RemoteSource) Summary(ctx context.Context) (*domain.ComplianceSummary, error) {
	var summary domain.ComplianceSummary
	if err := s.client.Get(ctx, "/api/compliance/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Acknowledge marks a flagged check as acknowledged upstream.
func (s *RemoteSource) Acknowledge(ctx context.Context, checkID string) (*domain.ComplianceCheck, error) {
	var check domain.ComplianceCheck
	path := "/api/compliance/checks/" + url.PathEscape(checkID) + "/acknowledge"
	resp, err := s.client.Do(ctx, upstream.Request{Method: http.MethodPost, Path: path})
	if err != nil {
		return nil, err
	}
	if err := resp.Decode(&check); err != nil {
		return nil, err
	}
	return &check, nil
}

// Channels fetches the data channels.
func (s *RemoteSource) Channels(ctx context.Context) ([]domain.Channel, error) {
	var out struct {
		Channels []domain.Channel `json:"channels"`
	}
	if err := s.client.Get(ctx, "/api/channels", nil, &out); err != nil {
		return nil, err
	}
	return out.Channels, nil
}

// Profiles fetches network configuration profiles.
func (s *RemoteSource) Profiles(ctx context.Context) ([]domain.NetworkProfile, error) {
	var out struct {
		Profiles []domain.NetworkProfile `json:"profiles"`
	}
	if err := s.client.Get(ctx, "/api/network/profiles", nil, &out); err != nil {
		return nil, err
	}
	return out.Profiles, nil
}

// Profile fetches one network configuration profile.
func (s *RemoteSource) Profile(ctx context.Context, id string) (*domain.NetworkProfile, error) {
	var profile domain.NetworkProfile
	if err := s.client.Get(ctx, "/api/network/profiles/"+url.PathEscape(id), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
