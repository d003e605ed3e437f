package domain

import "time"

// Block is a ledger block as presented by the explorer.
type Block struct {
	Height           uint64    `json:"height"`
	Hash             string    `json:"hash"`
	PreviousHash     string    `json:"previous_hash"`
	Proposer         string    `json:"proposer"`
	TransactionCount int       `json:"transaction_count"`
	SizeBytes        int64     `json:"size_bytes"`
	Timestamp        time.Time `json:"timestamp"`
}

// TransactionStatus enumerates transaction lifecycle states.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is a ledger transaction as presented by the explorer.
type Transaction struct {
	ID          string            `json:"id"`
	BlockHeight uint64            `json:"block_height"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Amount      string            `json:"amount"`
	AssetCode   string            `json:"asset_code"`
	Status      TransactionStatus `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
}

// ValidatorStatus enumerates validator participation states.
type ValidatorStatus string

const (
	ValidatorStatusActive   ValidatorStatus = "ACTIVE"
	ValidatorStatusJailed   ValidatorStatus = "JAILED"
	ValidatorStatusInactive ValidatorStatus = "INACTIVE"
)

// Validator is a consensus participant shown on the validator dashboard.
type Validator struct {
	ID             string          `json:"id"`
	Moniker        string          `json:"moniker"`
	Address        string          `json:"address"`
	Status         ValidatorStatus `json:"status"`
	VotingPower    int64           `json:"voting_power"`
	Uptime         float64         `json:"uptime"`
	CommissionRate float64         `json:"commission_rate"`
	LastSeen       time.Time       `json:"last_seen"`
}

// SearchResult is one explorer search hit, holding whichever entity matched.
type SearchResult struct {
	Kind        string       `json:"kind"`
	Block       *Block       `json:"block,omitempty"`
	Transaction *Transaction `json:"transaction,omitempty"`
}

const (
	SearchKindBlock       = "block"
	SearchKindTransaction = "transaction"
)

// NetworkSummary aggregates validator-set level figures.
type NetworkSummary struct {
	ActiveValidators int     `json:"active_validators"`
	TotalValidators  int     `json:"total_validators"`
	TotalVotingPower int64   `json:"total_voting_power"`
	Participation    float64 `json:"participation"`
	LatestHeight     uint64  `json:"latest_height"`
}
