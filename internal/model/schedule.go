package model

// Zone is one collection area with its pickup days.
type Zone struct {
	Name      string   `json:"zone"`
	Areas     []string `json:"areas"`
	Garbage   string   `json:"garbage"`
	Recycling string   `json:"recycling"`
	Hazardous string   `json:"hazardous"`
}

type Schedule struct {
	Notice string   `json:"notice"`
	Zones  []Zone   `json:"zones"`
	Dos    []string `json:"dos"`
	Donts  []string `json:"donts"`
}

// CollectionSchedule is the fixed city-wide pickup calendar.
func CollectionSchedule() Schedule {
	return Schedule{
		Notice: "Check your area's waste collection schedule below. Please put bins out by 7:00 AM on collection days.",
		Zones: []Zone{
			{
				Name:      "Zone A - Central",
				Areas:     []string{"Downtown", "Main Street", "City Center"},
				Garbage:   "Monday & Thursday",
				Recycling: "Tuesday",
				Hazardous: "First Saturday of month",
			},
			{
				Name:      "Zone B - North",
				Areas:     []string{"Northside", "Parkview", "Hillcrest"},
				Garbage:   "Tuesday & Friday",
				Recycling: "Wednesday",
				Hazardous: "Second Saturday of month",
			},
			{
				Name:      "Zone C - South",
				Areas:     []string{"Southdale", "Riverside", "Oak Valley"},
				Garbage:   "Wednesday & Saturday",
				Recycling: "Thursday",
				Hazardous: "Third Saturday of month",
			},
			{
				Name:      "Zone D - East",
				Areas:     []string{"Eastbrook", "Garden District", "Sunrise"},
				Garbage:   "Monday & Friday",
				Recycling: "Tuesday",
				Hazardous: "Fourth Saturday of month",
			},
			{
				Name:      "Zone E - West",
				Areas:     []string{"Westfield", "Meadowbrook", "Sunset Hills"},
				Garbage:   "Tuesday & Saturday",
				Recycling: "Wednesday",
				Hazardous: "First Saturday of month",
			},
		},
		Dos: []string{
			"Separate recyclables from regular waste",
			"Put bins out by 7:00 AM on collection day",
			"Keep lids closed to prevent spills",
			"Rinse containers before recycling",
		},
		Donts: []string{
			"Don't overfill bins",
			"Don't put hazardous waste in regular bins",
			"Don't leave bins out overnight",
			"Don't put electronics in regular waste",
		},
	}
}
