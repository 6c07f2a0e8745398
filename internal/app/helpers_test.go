package app

import (
	"testing"

	"quote_rollup/internal/domain/entities"

	"github.com/stretchr/testify/require"
)

func money(t *testing.T, v string) *entities.Money {
	t.Helper()
	m, err := entities.MoneyFromString(v, "USD")
	require.NoError(t, err)
	return &m
}
