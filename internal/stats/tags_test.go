package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antivibe-Inc/face-labs-sub000/pkg/types"
)

func tagged(daysAgo int, tags ...string) types.Record {
	r := rec(daysAgo, 5, 5)
	r.Emotion.Tags = tags
	return r
}

func TestTopTags_Ranking(t *testing.T) {
	records := []types.Record{
		tagged(1, "累", "累", "平静"),
		tagged(2, "累", "开心"),
	}

	ranked := TopTags(records, testNow)
	require.NotEmpty(t, ranked)

	assert.Equal(t, "累", ranked[0].Tag)
	assert.Equal(t, 3, ranked[0].Count)
	assert.InDelta(t, 60.0, ranked[0].Percent, 1e-9) // 3 of 5 occurrences

	// Ties break alphabetically for a deterministic ranking.
	require.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[1].Count)
	assert.Equal(t, 1, ranked[2].Count)
	assert.Less(t, ranked[1].Tag, ranked[2].Tag)
}

func TestTopTags_TopFiveOnly(t *testing.T) {
	records := []types.Record{
		tagged(1, "a", "a", "a", "b", "b", "c", "c", "d", "e", "f"),
	}
	ranked := TopTags(records, testNow)
	require.Len(t, ranked, 5)
	assert.Equal(t, "a", ranked[0].Tag)
	assert.Equal(t, 3, ranked[0].Count)
	assert.InDelta(t, 30.0, ranked[0].Percent, 1e-9)
}

func TestTopTags_WindowAndEmpty(t *testing.T) {
	assert.Empty(t, TopTags(nil, testNow))

	// Records older than 30 days do not count.
	ranked := TopTags([]types.Record{tagged(31, "累")}, testNow)
	assert.Empty(t, ranked)
}
