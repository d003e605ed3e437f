package domain

import "time"

// TokenAsset is an entry in the tokenization registry.
type TokenAsset struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Issuer      string    `json:"issuer"`
	TotalSupply string    `json:"total_supply"`
	Decimals    int       `json:"decimals"`
	Standard    string    `json:"standard"`
	CreatedAt   time.Time `json:"created_at"`
}

// IssuanceRecord is a single mint/burn entry for a token asset.
type IssuanceRecord struct {
	ID        string    `json:"id"`
	AssetID   string    `json:"asset_id"`
	Kind      string    `json:"kind"`
	Amount    string    `json:"amount"`
	TxID      string    `json:"tx_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ComplianceStatus enumerates outcomes of a compliance check.
type ComplianceStatus string

const (
	ComplianceStatusPassed       ComplianceStatus = "PASSED"
	ComplianceStatusFlagged      ComplianceStatus = "FLAGGED"
	ComplianceStatusAcknowledged ComplianceStatus = "ACKNOWLEDGED"
)

// ComplianceCheck is one row on the compliance panel.
type ComplianceCheck struct {
	ID         string           `json:"id"`
	EntityID   string           `json:"entity_id"`
	EntityKind string           `json:"entity_kind"`
	Rule       string           `json:"rule"`
	Status     ComplianceStatus `json:"status"`
	Detail     string           `json:"detail"`
	CheckedAt  time.Time        `json:"checked_at"`
}

// ComplianceSummary aggregates check counts per status.
type ComplianceSummary struct {
	Passed       int `json:"passed"`
	Flagged      int `json:"flagged"`
	Acknowledged int `json:"acknowledged"`
}

// Channel is a named data channel with throughput figures.
type Channel struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	MemberCount   int       `json:"member_count"`
	TxPerSecond   float64   `json:"tx_per_second"`
	BytesPerBlock int64     `json:"bytes_per_block"`
	CreatedAt     time.Time `json:"created_at"`
}

// NetworkProfile is a configuration profile in the network-configuration demo.
type NetworkProfile struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	ConsensusMode   string  `json:"consensus_mode"`
	BlockTimeMS     int     `json:"block_time_ms"`
	MaxBlockTxs     int     `json:"max_block_txs"`
	ShardCount      int     `json:"shard_count"`
	TargetTPS       float64 `json:"target_tps"`
	FinalityBlocks  int     `json:"finality_blocks"`
	FinalitySeconds float64 `json:"finality_seconds"`
}
