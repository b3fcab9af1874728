package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pass-wallet/enclave/internal/model"
)

func TestParseAddressRoundTrip(t *testing.T) {
	const raw = "0x00000000000000000000000000000000000000de"
	addr, err := model.ParseAddress(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, addr.String())
}

func TestParseAddressRejectsInvalid(t *testing.T) {
	_, err := model.ParseAddress("not-an-address")
	require.Error(t, err)
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr, err := model.ParseAddress("0x00000000000000000000000000000000000000de")
	require.NoError(t, err)

	data, err := json.Marshal(addr)
	require.NoError(t, err)

	var got model.Address
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, addr, got)
}

func TestAddressIsZero(t *testing.T) {
	var addr model.Address
	assert.True(t, addr.IsZero())
}
