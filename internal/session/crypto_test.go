package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealerRoundTrip(t *testing.T) {
	sealer, err := NewSealer("unit-test-secret")
	require.NoError(t, err)

	sealed, err := sealer.Seal("refresh-token-value")
	require.NoError(t, err)
	assert.NotEqual(t, "refresh-token-value", sealed)

	plain, err := sealer.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "refresh-token-value", plain)
}

func TestSealerRejectsTamperedValue(t *testing.T) {
	sealer, err := NewSealer("unit-test-secret")
	require.NoError(t, err)

	sealed, err := sealer.Seal("refresh-token-value")
	require.NoError(t, err)

	tampered := "A" + sealed[1:]
	if tampered == sealed {
		tampered = "B" + sealed[1:]
	}
	_, err = sealer.Open(tampered)
	assert.Error(t, err)
}

func TestSealerRejectsWrongKey(t *testing.T) {
	sealer, err := NewSealer("key-one")
	require.NoError(t, err)
	other, err := NewSealer("key-two")
	require.NoError(t, err)

	sealed, err := sealer.Seal("refresh-token-value")
	require.NoError(t, err)

	_, err = other.Open(sealed)
	assert.Error(t, err)
}

func TestSealerRequiresSecret(t *testing.T) {
	_, err := NewSealer("")
	assert.Error(t, err)
}

func TestSealerRejectsGarbage(t *testing.T) {
	sealer, err := NewSealer("unit-test-secret")
	require.NoError(t, err)

	_, err = sealer.Open("not base64!!!")
	assert.Error(t, err)

	_, err = sealer.Open("c2hvcnQ=")
	assert.Error(t, err)
}
