package entity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogFallback(t *testing.T) {
	catalog := DefaultCatalog()

	require.True(t, catalog.Has("oxygen_tank"))
	require.False(t, catalog.Has("coffee_machine"))

	// Unknown kinds resolve to the fire extinguisher requirements.
	req := catalog.Requirement("coffee_machine")
	require.Equal(t, CriticalityCritical, req.Criticality)
	require.Equal(t, EmergencyFire, req.Emergency)
}

func TestCatalogKinds(t *testing.T) {
	catalog := DefaultCatalog()
	kinds := catalog.Kinds()

	require.Len(t, kinds, 7)
	require.Equal(t, catalog.Len(), len(kinds))
	for i := 1; i < len(kinds); i++ {
		require.Less(t, kinds[i-1], kinds[i])
	}
}

func TestLoadCatalogOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`
oxygen_tank:
  min_clearance: 1.2
  max_height: 1.5
  criticality: CRITICAL
  required_quantity: 4
  emergency_type: oxygen_critical
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	req := catalog.Requirement("oxygen_tank")
	require.InDelta(t, 1.2, req.MinClearance, 1e-9)
	require.Equal(t, 4, req.RequiredQuantity)

	// Kinds without overrides keep the built-in entry.
	require.Equal(t, 3, catalog.Requirement("fire_extinguisher").RequiredQuantity)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestChecklist(t *testing.T) {
	fire := Checklist(EmergencyFire)
	require.Len(t, fire, 6)
	require.Contains(t, fire[0], "ACTIVATE fire alarm")

	generic := Checklist("meteor_shower")
	require.Len(t, generic, 3)
	require.Contains(t, generic[1], "CONTACT ground control")

	// Returned slices are copies.
	fire[0] = "mutated"
	require.NotEqual(t, fire[0], Checklist(EmergencyFire)[0])
}
