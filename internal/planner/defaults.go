package planner

import "bompilot/internal/models"

func budget(v float64) *float64 { return &v }

// defaultPlans is the static fallback table keyed by project type. It is
// deterministic and requires no network access, guaranteeing a non-empty
// plan for every project.
var defaultPlans = map[models.ProjectType][]CategorySpec{
	models.ProjectTypePCB: {
		{
			Name:         "Core MCU / SoC",
			Description:  "The main microcontroller or system-on-chip driving the board",
			TargetBudget: budget(10),
			SearchTerms:  []string{"microcontroller", "arm cortex mcu"},
		},
		{
			Name:         "Power stage",
			Description:  "Voltage regulation, supply filtering and protection",
			TargetBudget: budget(8),
			SearchTerms:  []string{"buck converter", "ldo regulator"},
		},
		{
			Name:         "Connectivity",
			Description:  "Wireless or wired communication modules",
			TargetBudget: budget(12),
			SearchTerms:  []string{"wifi module", "ble module"},
		},
	},
	models.ProjectTypeBreadboard: {
		{
			Name:         "MCU & Dev Boards",
			Description:  "Breadboard-friendly development boards",
			TargetBudget: budget(15),
			SearchTerms:  []string{"dev board", "raspberry pi pico"},
		},
		{
			Name:         "Prototyping Supplies",
			Description:  "Breadboards, jumper wires and headers",
			TargetBudget: budget(12),
			SearchTerms:  []string{"solderless breadboard", "jumper wires"},
		},
		{
			Name:         "Passives & Components",
			Description:  "Resistors, capacitors and discrete semiconductors",
			TargetBudget: budget(10),
			SearchTerms:  []string{"resistor kit", "capacitor kit"},
		},
	},
	models.ProjectTypeCustom: {
		{
			Name:         "Core MCU / SoC",
			Description:  "The main microcontroller or system-on-chip",
			TargetBudget: budget(12),
			SearchTerms:  []string{"microcontroller", "soc module"},
		},
		{
			Name:         "Power stage",
			Description:  "Voltage regulation and power delivery",
			TargetBudget: budget(10),
			SearchTerms:  []string{"voltage regulator", "power module"},
		},
		{
			Name:         "Sensing",
			Description:  "Sensors and signal conditioning",
			TargetBudget: budget(15),
			SearchTerms:  []string{"i2c sensor", "environmental sensor"},
		},
	},
}

// Defaults returns the static plan for a project type. Unknown types get
// the custom plan.
func Defaults(pt models.ProjectType) []CategorySpec {
	specs, ok := defaultPlans[pt]
	if !ok {
		specs = defaultPlans[models.ProjectTypeCustom]
	}
	// Copy so callers can mutate their plan freely.
	out := make([]CategorySpec, len(specs))
	copy(out, specs)
	return out
}
