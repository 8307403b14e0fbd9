package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := defaultConfig()
	require.Equal(t, "plain", cfg.Progress.Style)
	require.Equal(t, "█", cfg.Progress.Theme.BarCompleteChar)
	require.Equal(t, "░", cfg.Progress.Theme.BarIncompleteChar)
	require.Equal(t, []string{"#CABBE9", "#7E6EAC"}, cfg.Progress.Theme.BarGradient)
	require.Equal(t, "rounded", cfg.Progress.Layout.BoxStyle)
	require.Equal(t, "auto", cfg.Copy.Reflink)
}

func TestGetIsStableAcrossCalls(t *testing.T) {
	a := Get()
	b := Get()
	require.Equal(t, a, b)
}
