package interaction

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketingFinderLinear(t *testing.T) {
	root, err := DefaultFinder.Find(func(x float64) (float64, error) { return x - 32.5, nil }, 0)
	require.NoError(t, err)
	assert.InDelta(t, 32.5, root, 1e-6)

	root, err = DefaultFinder.Find(func(x float64) (float64, error) { return x + 71, nil }, 10)
	require.NoError(t, err)
	assert.InDelta(t, -71, root, 1e-6)
}

func TestBracketingFinderStartsOnRoot(t *testing.T) {
	calls := 0
	root, err := DefaultFinder.Find(func(x float64) (float64, error) {
		calls++
		return 0, nil
	}, 45)
	require.NoError(t, err)
	assert.Equal(t, 45.0, root)
	assert.Equal(t, 1, calls)
}

func TestBracketingFinderSkipsWrap(t *testing.T) {
	// misalignment of a moment direction that follows θ + 20, folded to (-90, 90]
	f := func(x float64) (float64, error) { return angleDiff(x+20, 0), nil }
	root, err := DefaultFinder.Find(f, 60)
	require.NoError(t, err)
	assert.InDelta(t, 0, angleDiff(root+20, 0), 1e-6)
}

func TestBracketingFinderNoRoot(t *testing.T) {
	_, err := DefaultFinder.Find(func(x float64) (float64, error) { return 1 + math.Abs(x), nil }, 0)
	assert.ErrorIs(t, err, ErrNoConvergence)
}

func TestBracketingFinderReturnsFunctionError(t *testing.T) {
	boom := errors.New("boom")
	_, err := DefaultFinder.Find(func(x float64) (float64, error) {
		if x > 10 {
			return 0, boom
		}
		return 1, nil
	}, 0)
	assert.ErrorIs(t, err, boom)
}

func TestBracketingFinderStepFunction(t *testing.T) {
	// a fibre entering the stress block flips the sign without passing zero
	step := func(x float64) (float64, error) {
		if x < 32.9073 {
			return -0.307, nil
		}
		return 0.309, nil
	}
	root, err := DefaultFinder.Find(step, 30)
	require.NoError(t, err)
	assert.InDelta(t, 32.9073, root, 1e-6)

	f, err := step(root)
	require.NoError(t, err)
	assert.InDelta(t, 0, f, 0.31)
}

func TestBracketingFinderRejectsLargeJump(t *testing.T) {
	finder := DefaultFinder
	finder.MaxJump = 1
	_, err := finder.Find(func(x float64) (float64, error) {
		if x < 12 {
			return -5, nil
		}
		return 5, nil
	}, 0)
	assert.ErrorIs(t, err, ErrNoConvergence)
}
