package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlertRuleMatches(t *testing.T) {
	rule := NewAlertRule("extinguisher watch", "Fire Extinguisher", 0.7)
	require.NotEmpty(t, rule.ID)
	require.True(t, rule.Active)

	require.True(t, rule.Matches(Detection{Label: "fire extinguisher", Confidence: 0.7}))
	require.True(t, rule.Matches(Detection{Label: "FIRE EXTINGUISHER", Confidence: 0.95}))
	require.False(t, rule.Matches(Detection{Label: "fire extinguisher", Confidence: 0.69}))
	require.False(t, rule.Matches(Detection{Label: "oxygen tank", Confidence: 0.95}))

	rule.Active = false
	require.False(t, rule.Matches(Detection{Label: "fire extinguisher", Confidence: 0.95}))
}
