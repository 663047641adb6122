package entity

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Criticality ranks how important an equipment kind is for crew safety.
type Criticality string

const (
	CriticalityCritical Criticality = "CRITICAL" // life threatening if absent
	CriticalityHigh     Criticality = "HIGH"
	CriticalityMedium   Criticality = "MEDIUM"
	CriticalityLow      Criticality = "LOW"
)

// EmergencyType classifies the emergency a missing equipment kind maps to.
type EmergencyType string

const (
	EmergencyFire                 EmergencyType = "fire"
	EmergencyOxygenCritical       EmergencyType = "oxygen_critical"
	EmergencyNitrogenLeak         EmergencyType = "nitrogen_leak"
	EmergencyMedical              EmergencyType = "medical_emergency"
	EmergencySafetySystemFailure  EmergencyType = "safety_system_failure"
	EmergencyCommunicationFailure EmergencyType = "communication_failure"
	EmergencyEvacuation           EmergencyType = "evacuation"
)

// Requirement describes the physical and safety requirements of one
// equipment kind. Entries are immutable once the catalog is built.
type Requirement struct {
	MinClearance        float64       `yaml:"min_clearance"`         // meters
	MaxHeight           float64       `yaml:"max_height"`            // meters from floor
	RequiredAccessAngle int           `yaml:"required_access_angle"` // degrees
	CriticalDistance    float64       `yaml:"critical_distance"`     // max meters from work areas
	Criticality         Criticality   `yaml:"criticality"`
	MaxResponseTime     int           `yaml:"max_response_time"` // seconds
	RequiredQuantity    int           `yaml:"required_quantity"` // minimum per module
	Emergency           EmergencyType `yaml:"emergency_type"`
	Description         string        `yaml:"description"`
}

// fallbackKind is used for labels the catalog does not know; the fire
// extinguisher entry is the most conservative one.
const fallbackKind = "fire_extinguisher"

// Catalog is the static table of known equipment kinds. It is built once
// at startup and never mutated afterwards.
type Catalog struct {
	kinds map[string]Requirement
}

func defaultRequirements() map[string]Requirement {
	return map[string]Requirement{
		"fire_extinguisher": {
			MinClearance:        0.5,
			MaxHeight:           1.8,
			RequiredAccessAngle: 270,
			CriticalDistance:    3.0,
			Criticality:         CriticalityCritical,
			MaxResponseTime:     30,
			RequiredQuantity:    3,
			Emergency:           EmergencyFire,
			Description:         "CO2/Halon fire suppression system",
		},
		"oxygen_tank": {
			MinClearance:        0.8,
			MaxHeight:           1.5,
			RequiredAccessAngle: 180,
			CriticalDistance:    5.0,
			Criticality:         CriticalityCritical,
			MaxResponseTime:     10,
			RequiredQuantity:    2,
			Emergency:           EmergencyOxygenCritical,
			Description:         "Life support oxygen supply",
		},
		"nitrogen_tank": {
			MinClearance:        1.0,
			MaxHeight:           2.0,
			RequiredAccessAngle: 180,
			CriticalDistance:    10.0,
			Criticality:         CriticalityHigh,
			MaxResponseTime:     60,
			RequiredQuantity:    1,
			Emergency:           EmergencyNitrogenLeak,
			Description:         "Pressurization and fire suppression",
		},
		"first_aid_box": {
			MinClearance:        0.3,
			MaxHeight:           1.6,
			RequiredAccessAngle: 180,
			CriticalDistance:    4.0,
			Criticality:         CriticalityHigh,
			MaxResponseTime:     120,
			RequiredQuantity:    2,
			Emergency:           EmergencyMedical,
			Description:         "Medical emergency supplies",
		},
		"fire_alarm": {
			MinClearance:        0.2,
			MaxHeight:           2.5,
			RequiredAccessAngle: 360,
			CriticalDistance:    8.0,
			Criticality:         CriticalityCritical,
			MaxResponseTime:     5,
			RequiredQuantity:    4,
			Emergency:           EmergencyFire,
			Description:         "Fire detection and alert system",
		},
		"safety_switch_panel": {
			MinClearance:        0.4,
			MaxHeight:           1.7,
			RequiredAccessAngle: 180,
			CriticalDistance:    2.0,
			Criticality:         CriticalityCritical,
			MaxResponseTime:     15,
			RequiredQuantity:    2,
			Emergency:           EmergencySafetySystemFailure,
			Description:         "Emergency shutdown controls",
		},
		"emergency_phone": {
			MinClearance:        0.3,
			MaxHeight:           1.5,
			RequiredAccessAngle: 180,
			CriticalDistance:    6.0,
			Criticality:         CriticalityHigh,
			MaxResponseTime:     45,
			RequiredQuantity:    3,
			Emergency:           EmergencyCommunicationFailure,
			Description:         "Ground communication system",
		},
	}
}

// DefaultCatalog builds the built-in equipment catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{kinds: defaultRequirements()}
}

// LoadCatalog builds the catalog, applying per-kind overrides from a YAML
// file when path is not empty. Override entries replace built-in ones whole.
func LoadCatalog(path string) (*Catalog, error) {
	kinds := defaultRequirements()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		overrides := make(map[string]Requirement)
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return nil, fmt.Errorf("parse catalog file: %w", err)
		}
		for kind, req := range overrides {
			kinds[NormalizeLabel(kind)] = req
		}
	}
	return &Catalog{kinds: kinds}, nil
}

// Requirement returns the entry for a kind, falling back to the most
// conservative entry for unknown kinds.
func (c *Catalog) Requirement(kind string) Requirement {
	if req, ok := c.kinds[kind]; ok {
		return req
	}
	return c.kinds[fallbackKind]
}

// Has reports whether the kind is part of the catalog.
func (c *Catalog) Has(kind string) bool {
	_, ok := c.kinds[kind]
	return ok
}

// Kinds returns all known kinds in stable sorted order.
func (c *Catalog) Kinds() []string {
	kinds := make([]string, 0, len(c.kinds))
	for kind := range c.kinds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Len returns the number of known equipment kinds.
func (c *Catalog) Len() int {
	return len(c.kinds)
}

var defaultChecklist = []string{
	"1. SECURE area immediately",
	"2. CONTACT ground control",
	"3. FOLLOW standard emergency procedures",
}

var checklists = map[EmergencyType][]string{
	EmergencyFire: {
		"1. ACTIVATE fire alarm system",
		"2. LOCATE nearest CO2 fire extinguisher",
		"3. NOTIFY ground control immediately",
		"4. EVACUATE affected module if necessary",
		"5. ISOLATE oxygen supply to affected area",
		"6. MONITOR atmospheric conditions",
	},
	EmergencyOxygenCritical: {
		"1. CHECK oxygen tank status immediately",
		"2. ACTIVATE backup oxygen supply",
		"3. NOTIFY ground control - PRIORITY 1",
		"4. LOCATE emergency oxygen masks",
		"5. PREPARE for potential evacuation",
		"6. MONITOR crew vital signs",
	},
	EmergencyMedical: {
		"1. SECURE medical supplies immediately",
		"2. ASSESS crew member condition",
		"3. CONTACT medical officer on ground",
		"4. PREPARE medical equipment",
		"5. DOCUMENT all vital signs",
		"6. STANDBY for medical guidance",
	},
	EmergencyNitrogenLeak: {
		"1. ISOLATE nitrogen supply lines",
		"2. CHECK for system pressure drops",
		"3. ACTIVATE atmospheric monitoring",
		"4. NOTIFY ground control",
		"5. PREPARE backup pressurization",
		"6. MONITOR for fire suppression impact",
	},
	EmergencySafetySystemFailure: {
		"1. ACTIVATE manual safety controls",
		"2. VERIFY backup systems operational",
		"3. IMMEDIATE ground control contact",
		"4. ISOLATE affected systems",
		"5. PREPARE emergency shutdown",
		"6. DOCUMENT system status",
	},
}

// Checklist returns the emergency response checklist for an emergency type.
// Unknown types get the generic checklist.
func Checklist(emergency EmergencyType) []string {
	steps, ok := checklists[emergency]
	if !ok {
		steps = defaultChecklist
	}
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}
