package adplatform

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubClient_PromotionRows(t *testing.T) {
	c := NewStubClient()

	rows, err := c.FetchPromotionRows(context.Background(), "mat123", nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1000", rows[0].Cost.String())
	assert.Equal(t, "3000", rows[0].SalesAmount.String())

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows, err = c.FetchPromotionRows(context.Background(), "mat123", &DateRange{Start: day, End: day})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-01", rows[0].Date)
}

func TestStubClient_InfluencerInfo(t *testing.T) {
	c := NewStubClient()

	info, err := c.FetchInfluencerInfo(context.Background(), "https://www.douyin.com/video/mat123")
	require.NoError(t, err)
	assert.Equal(t, "uid456", info.UID)

	_, err = c.FetchInfluencerInfo(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStubClient_MaterialBatch(t *testing.T) {
	rows, err := NewStubClient().FetchMaterialBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "素材标题_b", rows[1].Title)
	assert.Equal(t, int64(10000), rows[1].PlayCount)
}
