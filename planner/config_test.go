package planner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/katalvlaran/gridplan/gridmap"
	"github.com/katalvlaran/gridplan/planner"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := planner.ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, planner.DefaultConfig(), cfg)

	cfg, err = planner.ParseConfig([]byte("turn_penalty: 2\nparallel: true\n"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.TurnPenalty)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, planner.DefaultValidMax, cfg.ValidMax)
	assert.True(t, cfg.AllowUnknown)
}

func TestParseConfig_UnknownKey(t *testing.T) {
	_, err := planner.ParseConfig([]byte("turn_penalti: 2\n"))
	assert.ErrorIs(t, err, planner.ErrOptionViolation)
}

func TestConfig_ValidateCollectsAll(t *testing.T) {
	cfg := planner.DefaultConfig()
	cfg.LethalThreshold = 120
	cfg.CostWeight = -1
	cfg.MaxSteps = -4

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.ErrorIs(t, err, planner.ErrOptionViolation)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lethal_threshold: 60\nreachability_check: true\n"), 0o600))

	cfg, err := planner.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.LethalThreshold)
	assert.True(t, cfg.ReachabilityCheck)

	// a 60-cost wall blocks the default planner but not this configuration
	gm, err := gridmap.From2D([][]int{
		{0, 60, 0},
		{0, 60, 0},
	})
	require.NoError(t, err)
	_, err = planner.Plan(gm, gridmap.Pt(0, 0), gridmap.Pt(2, 1))
	assert.ErrorIs(t, err, planner.ErrNoPathFound)

	path2, err := planner.Plan(gm, gridmap.Pt(0, 0), gridmap.Pt(2, 1), cfg.Options()...)
	require.NoError(t, err)
	assert.Equal(t, gridmap.Pt(2, 1), path2[len(path2)-1])

	_, err = planner.LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
