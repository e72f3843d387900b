package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelofallars/crewdesk/internal/domain"
)

func TestBuildEventQuery(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		query, args, err := buildEventQuery(domain.EventFilter{})
		require.NoError(t, err)
		assert.NotContains(t, query, "WHERE")
		assert.Empty(t, args)
	})

	t.Run("ids and range", func(t *testing.T) {
		today := domain.NewDate(2024, 5, 1)
		query, args, err := buildEventQuery(domain.EventFilter{
			IDs:              []int64{3, 4},
			EndsOnOrAfter:    today,
			StartsOnOrBefore: today,
		})
		require.NoError(t, err)
		assert.Contains(t, query, "WHERE id IN ($1, $2) AND end_date >= $3 AND start_date <= $4")
		require.Len(t, args, 4)
		assert.Equal(t, []any{int64(3), int64(4)}, args[:2])
	})
}
