package model_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pass-wallet/enclave/internal/model"
)

func TestAmountJSONRoundTrip(t *testing.T) {
	a := model.NewAmount(1_000_000_000_000_000_000)
	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"1000000000000000000"`, string(data))

	var got model.Amount
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 0, got.Cmp(a))
}

func TestAmountFromBigIntRejectsNegative(t *testing.T) {
	_, err := model.AmountFromBigInt(big.NewInt(-1))
	require.Error(t, err)
}

func TestAmountArithmetic(t *testing.T) {
	a := model.NewAmount(100)
	b := model.NewAmount(40)
	assert.Equal(t, "140", a.Add(b).String())
	assert.Equal(t, "60", a.Sub(b).String())
	assert.True(t, model.ZeroAmount().IsZero())
}

func TestAmountUnmarshalRejectsGarbage(t *testing.T) {
	var got model.Amount
	err := json.Unmarshal([]byte(`"not-a-number"`), &got)
	require.Error(t, err)
}
