package actions

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carteira-app/finance-server/internal/errdefs"
)

func TestUpsertLimit_NegativeValueRejected(t *testing.T) {
	fixture := newTestFixture()
	fixture.addClient("alice", true)

	action := &UpsertLimit{
		PlatformID: "alice",
		CategoryID: 1,
		Value:      decimal.RequireFromString("-1.00"),
	}
	err := action.Perform(context.Background(), fixture.writer)

	assert.True(t, errdefs.IsKind(err, errdefs.KindValidation))
	assert.Empty(t, fixture.limits.upserts)
}

func TestUpsertLimit_UnknownCategoryRejected(t *testing.T) {
	fixture := newTestFixture()
	fixture.addClient("alice", true)

	action := &UpsertLimit{
		PlatformID: "alice",
		CategoryID: 42,
		Value:      decimal.RequireFromString("100.00"),
	}
	err := action.Perform(context.Background(), fixture.writer)

	assert.True(t, errdefs.IsKind(err, errdefs.KindValidation))
}

func TestUpsertLimit_OverwritesPreviousValue(t *testing.T) {
	fixture := newTestFixture()
	fixture.addClient("alice", true)

	first := &UpsertLimit{PlatformID: "alice", CategoryID: 1, Value: decimal.RequireFromString("100.00")}
	require.NoError(t, first.Perform(context.Background(), fixture.writer))

	second := &UpsertLimit{PlatformID: "alice", CategoryID: 1, Value: decimal.RequireFromString("250.00")}
	require.NoError(t, second.Perform(context.Background(), fixture.writer))

	require.Len(t, fixture.limits.upserts, 2)
	assert.True(t, fixture.limits.rows[1].Value.Equal(decimal.RequireFromString("250.00")))
}

func TestUpsertLimit_ZeroValueAllowed(t *testing.T) {
	fixture := newTestFixture()
	fixture.addClient("alice", true)

	action := &UpsertLimit{PlatformID: "alice", CategoryID: 2, Value: decimal.Zero}
	err := action.Perform(context.Background(), fixture.writer)

	require.NoError(t, err)
	assert.Len(t, fixture.limits.upserts, 1)
}
