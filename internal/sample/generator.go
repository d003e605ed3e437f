// Package sample generates deterministic demo data for dashboards running in
// demo mode or degraded against an unreachable upstream.
package sample

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
)

// Generator produces sample dashboard data from a fixed seed so demo views
// stay stable across requests.
type Generator struct {
	seed int64
}

// NewGenerator creates a generator. The same seed yields the same data.
func NewGenerator(seed int64) *Generator {
	return &Generator{seed: seed}
}

func (g *Generator) rng(salt int64) *rand.Rand {
	return rand.New(rand.NewSource(g.seed + salt))
}

const latestSampleHeight = 8_421_337

func sampleHash(r *rand.Rand) string {
	const hexDigits = "0123456789abcdef"
	b := make([]byte, 64)
	for i := range b {
		b[i] = hexDigits[r.Intn(len(hexDigits))]
	}
	return "0x" + string(b)
}

func sampleAddress(r *rand.Rand) string {
	const hexDigits = "0123456789abcdef"
	b := make([]byte, 40)
	for i := range b {
		b[i] = hexDigits[r.Intn(len(hexDigits))]
	}
	return "aur1" + string(b)
}

// Blocks returns the latest n sample blocks, newest first.
func (g *Generator) Blocks(n int) []domain.Block {
	blocks := make([]domain.Block, 0, n)
	for i := 0; i < n; i++ {
		blocks = append(blocks, g.Block(latestSampleHeight-uint64(i)))
	}
	return blocks
}

// Block returns the sample block at the given height.
func (g *Generator) Block(height uint64) domain.Block {
	r := g.rng(int64(height))
	return domain.Block{
		Height:           height,
		Hash:             sampleHash(r),
		PreviousHash:     sampleHash(r),
		Proposer:         fmt.Sprintf("validator-%02d", r.Intn(24)),
		TransactionCount: 20 + r.Intn(480),
		SizeBytes:        int64(16_384 + r.Intn(1<<20)),
		Timestamp:        time.Now().Add(-time.Duration(latestSampleHeight-height) * 5 * time.Second),
	}
}

// Transactions returns n recent sample transactions.
func (g *Generator) Transactions(n int) []domain.Transaction {
	txs := make([]domain.Transaction, 0, n)
	r := g.rng(1)
	for i := 0; i < n; i++ {
		txs = append(txs, g.transactionAt(r, latestSampleHeight-uint64(i/5), i))
	}
	return txs
}

// Transaction returns a deterministic sample transaction for the given id.
func (g *Generator) Transaction(id string) domain.Transaction {
	var salt int64
	for _, c := range id {
		salt = salt*31 + int64(c)
	}
	r := g.rng(salt)
	tx := g.transactionAt(r, latestSampleHeight-uint64(r.Intn(1000)), 0)
	tx.ID = id
	return tx
}

// BlockTransactions returns the sample transactions included in the block at
// the given height. The count follows the block's TransactionCount, capped so
// a busy block stays a reasonable page.
func (g *Generator) BlockTransactions(height uint64) []domain.Transaction {
	block := g.Block(height)
	n := block.TransactionCount
	if n > 25 {
		n = 25
	}
	r := g.rng(int64(height) + 1_000_003)
	txs := make([]domain.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txs = append(txs, g.transactionAt(r, height, i))
	}
	return txs
}

func (g *Generator) transactionAt(r *rand.Rand, height uint64, i int) domain.Transaction {
	statuses := []domain.TransactionStatus{
		domain.TransactionStatusConfirmed,
		domain.TransactionStatusConfirmed,
		domain.TransactionStatusConfirmed,
		domain.TransactionStatusPending,
		domain.TransactionStatusFailed,
	}
	return domain.Transaction{
		ID:          sampleHash(r),
		BlockHeight: height,
		From:        sampleAddress(r),
		To:          sampleAddress(r),
		Amount:      fmt.Sprintf("%d.%04d", r.Intn(100_000), r.Intn(10_000)),
		AssetCode:   []string{"AUR", "USDA", "CARBON", "BOND24"}[r.Intn(4)],
		Status:      statuses[r.Intn(len(statuses))],
		Timestamp:   time.Now().Add(-time.Duration(i) * 7 * time.Second),
	}
}

// Validators returns the sample validator set.
func (g *Generator) Validators() []domain.Validator {
	r := g.rng(2)
	validators := make([]domain.Validator, 0, 24)
	for i := 0; i < 24; i++ {
		status := domain.ValidatorStatusActive
		switch {
		case i == 21:
			status = domain.ValidatorStatusJailed
		case i > 21:
			status = domain.ValidatorStatusInactive
		}
		validators = append(validators, domain.Validator{
			ID:             fmt.Sprintf("validator-%02d", i),
			Moniker:        fmt.Sprintf("aurigraph-node-%02d", i),
			Address:        sampleAddress(r),
			Status:         status,
			VotingPower:    int64(1_000_000 + r.Intn(9_000_000)),
			Uptime:         0.95 + r.Float64()*0.05,
			CommissionRate: float64(r.Intn(20)) / 100,
			LastSeen:       time.Now().Add(-time.Duration(r.Intn(60)) * time.Second),
		})
	}
	return validators
}

// NetworkSummary aggregates the sample validator set.
func (g *Generator) NetworkSummary() domain.NetworkSummary {
	validators := g.Validators()
	summary := domain.NetworkSummary{
		TotalValidators: len(validators),
		LatestHeight:    latestSampleHeight,
	}
	for _, v := range validators {
		summary.TotalVotingPower += v.VotingPower
		if v.Status == domain.ValidatorStatusActive {
			summary.ActiveValidators++
		}
	}
	if summary.TotalValidators > 0 {
		summary.Participation = float64(summary.ActiveValidators) / float64(summary.TotalValidators)
	}
	return summary
}

// TokenAssets returns the sample tokenization registry.
func (g *Generator) TokenAssets() []domain.TokenAsset {
	r := g.rng(3)
	specs := []struct{ code, name, standard string }{
		{"AUR", "Aurigraph Utility Token", "ADS-20"},
		{"USDA", "Aurigraph Stable Dollar", "ADS-20"},
		{"CARBON", "Carbon Credit Registry", "ADS-721"},
		{"BOND24", "2024 Infrastructure Bond", "ADS-1155"},
		{"REALTY", "Tokenized Realty Pool", "ADS-1155"},
	}
	assets := make([]domain.TokenAsset, 0, len(specs))
	for i, spec := range specs {
		assets = append(assets, domain.TokenAsset{
			ID:          fmt.Sprintf("asset-%03d", i+1),
			Code:        spec.code,
			Name:        spec.name,
			Issuer:      sampleAddress(r),
			TotalSupply: fmt.Sprintf("%d000000", 1+r.Intn(900)),
			Decimals:    8,
			Standard:    spec.standard,
			CreatedAt:   time.Now().AddDate(0, -(i + 1), 0),
		})
	}
	return assets
}

// Issuances returns the sample mint/burn history for an asset.
func (g *Generator) Issuances(assetID string, n int) []domain.IssuanceRecord {
	var salt int64
	for _, c := range assetID {
		salt = salt*31 + int64(c)
	}
	r := g.rng(salt)
	records := make([]domain.IssuanceRecord, 0, n)
	for i := 0; i < n; i++ {
		kind := "MINT"
		if r.Intn(5) == 0 {
			kind = "BURN"
		}
		records = append(records, domain.IssuanceRecord{
			ID:        fmt.Sprintf("%s-iss-%03d", assetID, i+1),
			AssetID:   assetID,
			Kind:      kind,
			Amount:    fmt.Sprintf("%d000", 1+r.Intn(999)),
			TxID:      sampleHash(r),
			Timestamp: time.Now().Add(-time.Duration(i) * 36 * time.Hour),
		})
	}
	return records
}

// ComplianceChecks returns sample compliance panel rows.
func (g *Generator) ComplianceChecks() []domain.ComplianceCheck {
	r := g.rng(4)
	rules := []string{"KYC_VERIFIED", "SANCTIONS_SCREEN", "TRANSFER_LIMIT", "JURISDICTION_ALLOWED"}
	checks := make([]domain.ComplianceCheck, 0, 20)
	for i := 0; i < 20; i++ {
		status := domain.ComplianceStatusPassed
		switch r.Intn(6) {
		case 0:
			status = domain.ComplianceStatusFlagged
		case 1:
			status = domain.ComplianceStatusAcknowledged
		}
		checks = append(checks, domain.ComplianceCheck{
			ID:         fmt.Sprintf("check-%03d", i+1),
			EntityID:   sampleAddress(r),
			EntityKind: []string{"ACCOUNT", "ASSET", "CHANNEL"}[r.Intn(3)],
			Rule:       rules[r.Intn(len(rules))],
			Status:     status,
			Detail:     "automated screening result",
			CheckedAt:  time.Now().Add(-time.Duration(i) * 2 * time.Hour),
		})
	}
	return checks
}

// Channels returns sample data channels.
func (g *Generator) Channels() []domain.Channel {
	r := g.rng(5)
	names := []string{"settlement", "trade-finance", "supply-chain", "energy-grid", "registry-sync"}
	channels := make([]domain.Channel, 0, len(names))
	for i, name := range names {
		channels = append(channels, domain.Channel{
			ID:            fmt.Sprintf("channel-%03d", i+1),
			Name:          name,
			MemberCount:   2 + r.Intn(14),
			TxPerSecond:   float64(r.Intn(2000)) / 10,
			BytesPerBlock: int64(8_192 + r.Intn(1<<19)),
			CreatedAt:     time.Now().AddDate(0, 0, -(i+1)*11),
		})
	}
	return channels
}

// NetworkProfiles returns the network-configuration demo profiles.
func (g *Generator) NetworkProfiles() []domain.NetworkProfile {
	profiles := []domain.NetworkProfile{
		{ID: "profile-dev", Name: "Development", ConsensusMode: "SOLO", BlockTimeMS: 1000, MaxBlockTxs: 200, ShardCount: 1},
		{ID: "profile-test", Name: "Testnet", ConsensusMode: "RAFT", BlockTimeMS: 2500, MaxBlockTxs: 500, ShardCount: 4},
		{ID: "profile-main", Name: "Mainnet", ConsensusMode: "HYPERBFT", BlockTimeMS: 5000, MaxBlockTxs: 1000, ShardCount: 16},
	}
	for i := range profiles {
		profiles[i] = DeriveProfile(profiles[i])
	}
	return profiles
}

// DeriveProfile fills in the parameters computed from a profile's base values.
func DeriveProfile(p domain.NetworkProfile) domain.NetworkProfile {
	if p.BlockTimeMS > 0 {
		p.TargetTPS = float64(p.MaxBlockTxs*p.ShardCount) / (float64(p.BlockTimeMS) / 1000)
	}
	p.FinalityBlocks = 2
	if p.ConsensusMode == "HYPERBFT" {
		p.FinalityBlocks = 3
	}
	p.FinalitySeconds = float64(p.FinalityBlocks*p.BlockTimeMS) / 1000
	return p
}
