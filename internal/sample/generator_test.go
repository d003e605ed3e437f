package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aurigraph-DLT-Corp/aurigraph-enterprise-portal-sub000/internal/domain"
)

func TestBlocksAreDeterministicPerSeed(t *testing.T) {
	a := NewGenerator(42)
	b := NewGenerator(42)

	blockA := a.Block(8_421_000)
	blockB := b.Block(8_421_000)

	assert.Equal(t, blockA.Hash, blockB.Hash)
	assert.Equal(t, blockA.Proposer, blockB.Proposer)
	assert.Equal(t, blockA.TransactionCount, blockB.TransactionCount)

	other := NewGenerator(43)
	assert.NotEqual(t, blockA.Hash, other.Block(8_421_000).Hash)
}

func TestBlocksDescendFromLatestHeight(t *testing.T) {
	g := NewGenerator(42)
	blocks := g.Blocks(5)

	require.Len(t, blocks, 5)
	for i := 1; i < len(blocks); i++ {
		assert.Equal(t, blocks[i-1].Height-1, blocks[i].Height)
	}
}

func TestTransactionKeepsRequestedID(t *testing.T) {
	g := NewGenerator(42)

	tx := g.Transaction("0xabc123")
	assert.Equal(t, "0xabc123", tx.ID)

	again := g.Transaction("0xabc123")
	assert.Equal(t, tx.From, again.From)
	assert.Equal(t, tx.Amount, again.Amount)
}

func TestValidatorSetShape(t *testing.T) {
	g := NewGenerator(42)
	validators := g.Validators()

	require.Len(t, validators, 24)

	var active, jailed, inactive int
	for _, v := range validators {
		switch v.Status {
		case domain.ValidatorStatusActive:
			active++
		case domain.ValidatorStatusJailed:
			jailed++
		case domain.ValidatorStatusInactive:
			inactive++
		}
		assert.GreaterOrEqual(t, v.Uptime, 0.95)
		assert.LessOrEqual(t, v.Uptime, 1.0)
	}
	assert.Equal(t, 21, active)
	assert.Equal(t, 1, jailed)
	assert.Equal(t, 2, inactive)
}

func TestNetworkSummaryMatchesValidatorSet(t *testing.T) {
	g := NewGenerator(42)
	summary := g.NetworkSummary()

	assert.Equal(t, 24, summary.TotalValidators)
	assert.Equal(t, 21, summary.ActiveValidators)
	assert.InDelta(t, 21.0/24.0, summary.Participation, 1e-9)
	assert.Positive(t, summary.TotalVotingPower)
}

func TestIssuancesBelongToAsset(t *testing.T) {
	g := NewGenerator(42)
	records := g.Issuances("asset-001", 10)

	require.Len(t, records, 10)
	for _, rec := range records {
		assert.Equal(t, "asset-001", rec.AssetID)
		assert.Contains(t, []string{"MINT", "BURN"}, rec.Kind)
	}
}

func TestDeriveProfileComputesThroughputAndFinality(t *testing.T) {
	p := DeriveProfile(domain.NetworkProfile{
		ConsensusMode: "HYPERBFT",
		BlockTimeMS:   5000,
		MaxBlockTxs:   1000,
		ShardCount:    16,
	})

	assert.InDelta(t, 3200.0, p.TargetTPS, 1e-9)
	assert.Equal(t, 3, p.FinalityBlocks)
	assert.InDelta(t, 15.0, p.FinalitySeconds, 1e-9)

	raft := DeriveProfile(domain.NetworkProfile{ConsensusMode: "RAFT", BlockTimeMS: 2500, MaxBlockTxs: 500, ShardCount: 4})
	assert.Equal(t, 2, raft.FinalityBlocks)
	assert.InDelta(t, 5.0, raft.FinalitySeconds, 1e-9)
}
