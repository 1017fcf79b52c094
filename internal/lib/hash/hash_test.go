package hash_test

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"clearbid/internal/lib/hash"
)

func TestShortIDShape(t *testing.T) {
	id := hash.ShortID("Road Repair")
	require.Len(t, id, 16)

	_, err := hex.DecodeString(id)
	require.NoError(t, err)
}

func TestShortIDIsTimeSalted(t *testing.T) {
	first := hash.ShortID("Road Repair")
	second := hash.ShortID("Road Repair")
	require.NotEqual(t, first, second)
}

func TestContentHashMatchesCanonicalSerialization(t *testing.T) {
	criteria := map[string]float64{"price": 0.6, "quality": 0.4}

	got, err := hash.ContentHash(criteria)
	require.NoError(t, err)
	require.Len(t, got, 64)

	data, err := json.Marshal(criteria)
	require.NoError(t, err)
	sum := sha256.Sum256(data)
	require.Equal(t, hex.EncodeToString(sum[:]), got)
}

func TestContentHashIsDeterministic(t *testing.T) {
	criteria := map[string]float64{"quality": 0.4, "price": 0.6}

	first, err := hash.ContentHash(criteria)
	require.NoError(t, err)
	second, err := hash.ContentHash(criteria)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
