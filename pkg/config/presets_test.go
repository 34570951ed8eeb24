package config_test

import (
	"testing"

	"github.com/sherine-k/qnetsim/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	chk := require.New(t)

	presets := config.Presets()
	chk.Len(presets, 2)
	chk.Equal("network", presets[0].Name)
	chk.Equal("tandem", presets[1].Name)

	tandem, err := config.LookupPreset("tandem")
	chk.NoError(err)
	chk.Equal(1.5, tandem.StartAt)
	chk.Equal(config.GuardLoop, tandem.Termination.Guard)
	chk.Empty(config.Warnings(tandem))

	network, err := config.LookupPreset("network")
	chk.NoError(err)
	chk.Equal(2.0, network.StartAt)
	chk.Equal(config.GuardDraw, network.Termination.Guard)
	chk.Len(network.Nodes, 3)
	chk.Empty(config.Warnings(network))

	_, err = config.LookupPreset("ring")
	chk.ErrorContains(err, `unknown preset "ring"`)
}

func TestPresetsAreIndependentCopies(t *testing.T) {
	a, err := config.LookupPreset("tandem")
	require.NoError(t, err)
	a.Nodes[0].Capacity = 99

	b, err := config.LookupPreset("tandem")
	require.NoError(t, err)
	require.Equal(t, 3, b.Nodes[0].Capacity)
}

func TestLookupPresetAppliesOverrides(t *testing.T) {
	chk := require.New(t)

	cfg, err := config.LookupPreset("tandem", func(c *config.Config) {
		c.Termination.Guard = config.GuardDraw
		c.Termination.Limit = 20
	})
	chk.NoError(err)
	chk.Equal(config.GuardDraw, cfg.Termination.Guard)
	chk.EqualValues(20, cfg.Termination.Limit)

	_, err = config.LookupPreset("tandem", func(c *config.Config) { c.Termination.Guard = "sometimes" })
	chk.ErrorIs(err, config.ErrInvalid)
	chk.ErrorContains(err, "preset tandem")
}
