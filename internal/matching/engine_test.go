package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companion-matcher/internal/apperr"
	"companion-matcher/internal/models"
	"companion-matcher/internal/store"
)

func newEngine(t *testing.T, profiles ...*models.UserProfile) *Engine {
	t.Helper()
	dir := store.NewDirectory()
	for _, profile := range profiles {
		require.NoError(t, dir.Create(profile))
	}
	return NewEngine(dir)
}

func TestComputeMatchesSharedInterestsAndScore(t *testing.T) {
	engine := newEngine(t,
		&models.UserProfile{Name: "Alice", Age: 30, Interests: []string{"music", "tech", "art"}},
		&models.UserProfile{Name: "Bob", Age: 32, Interests: []string{"music", "tech", "travel"}},
	)

	matches, err := engine.ComputeMatches("alice")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.Equal(t, "Bob", matches[0].Name)
	assert.ElementsMatch(t, []string{"music", "tech"}, matches[0].SharedInterests)
	// round(100 * 2 / 3) = 67
	assert.Equal(t, 67, matches[0].CompatibilityScore)
}

func TestComputeMatchesUnknownTarget(t *testing.T) {
	engine := newEngine(t)

	_, err := engine.ComputeMatches("nobody")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestComputeMatchesExcludesBelowThreshold(t *testing.T) {
	engine := newEngine(t,
		&models.UserProfile{Name: "Alice", Age: 30, Interests: []string{"music", "tech", "art"}},
		&models.UserProfile{Name: "Bob", Age: 32, Interests: []string{"music", "travel"}},
		&models.UserProfile{Name: "Carol", Age: 28, Interests: []string{"cooking"}},
	)

	matches, err := engine.ComputeMatches("alice")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestComputeMatchesExcludesTarget(t *testing.T) {
	engine := newEngine(t,
		&models.UserProfile{Name: "Alice", Age: 30, Interests: []string{"music", "tech"}},
		&models.UserProfile{Name: "Bob", Age: 32, Interests: []string{"music", "tech"}},
	)

	matches, err := engine.ComputeMatches("alice")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Bob", matches[0].Name)
}

func TestComputeMatchesRanking(t *testing.T) {
	engine := newEngine(t,
		&models.UserProfile{Name: "Target", Age: 30, Interests: []string{"music", "tech", "art", "yoga"}},
		// 2 of max(4,2) = 50
		&models.UserProfile{Name: "Low", Age: 25, Interests: []string{"music", "tech"}},
		// 4 of max(4,4) = 100
		&models.UserProfile{Name: "Perfect", Age: 27, Interests: []string{"music", "tech", "art", "yoga"}},
		// 3 of max(4,3) = 75
		&models.UserProfile{Name: "Mid", Age: 26, Interests: []string{"music", "tech", "art"}},
		// ties with Low at 50, ranks after it by name
		&models.UserProfile{Name: "Zed", Age: 28, Interests: []string{"art", "yoga"}},
	)

	matches, err := engine.ComputeMatches("target")
	require.NoError(t, err)
	require.Len(t, matches, 4)

	names := make([]string, len(matches))
	for i, match := range matches {
		names[i] = match.Name
	}
	assert.Equal(t, []string{"Perfect", "Mid", "Low", "Zed"}, names)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].CompatibilityScore, matches[i].CompatibilityScore)
	}
	for _, match := range matches {
		assert.GreaterOrEqual(t, match.CompatibilityScore, 0)
		assert.LessOrEqual(t, match.CompatibilityScore, 100)
		assert.GreaterOrEqual(t, len(match.SharedInterests), MinSharedInterests)
	}
}
