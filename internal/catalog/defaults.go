package catalog

// defaultEntries is the built-in UK constraint catalog. Buffer distances
// and tier thresholds reflect typical planning-screening practice for
// ground-mounted solar; they can be overridden wholesale with a YAML
// catalog file.
var defaultEntries = []ConstraintConfig{
	// Environmental designations.
	{
		ID: "sssi", Name: "Site of Special Scientific Interest",
		Category: CategoryEnvironmental, BufferDistanceMeters: 5000, Weight: 1.2,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 500, Score: 20},
			Moderate:    Tier{ThresholdMeters: 2000, Score: 55},
			Good:        Tier{ThresholdMeters: 5000, Score: 90},
		},
		OutputTemplate: "{count} SSSI within the screening buffer; nearest is {name} at {distance}",
	},
	{
		ID: "sac", Name: "Special Area of Conservation",
		Category: CategoryEnvironmental, BufferDistanceMeters: 10000, Weight: 1.3,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 1000, Score: 15},
			Moderate:    Tier{ThresholdMeters: 5000, Score: 50},
			Good:        Tier{ThresholdMeters: 10000, Score: 90},
		},
		OutputTemplate: "{count} SAC within the screening buffer; nearest is {name} at {distance}",
	},
	{
		ID: "spa", Name: "Special Protection Area",
		Category: CategoryEnvironmental, BufferDistanceMeters: 10000, Weight: 1.3,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 1000, Score: 15},
			Moderate:    Tier{ThresholdMeters: 5000, Score: 50},
			Good:        Tier{ThresholdMeters: 10000, Score: 90},
		},
		OutputTemplate: "{count} SPA within the screening buffer; nearest is {name} at {distance}",
	},
	{
		ID: "ramsar", Name: "Ramsar Wetland",
		Category: CategoryEnvironmental, BufferDistanceMeters: 10000, Weight: 1.2,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 1000, Score: 15},
			Moderate:    Tier{ThresholdMeters: 5000, Score: 50},
			Good:        Tier{ThresholdMeters: 10000, Score: 90},
		},
		OutputTemplate: "{count} Ramsar site(s) within the screening buffer; nearest is {name} at {distance}",
	},
	{
		ID: "ancient_woodland", Name: "Ancient Woodland",
		Category: CategoryEnvironmental, BufferDistanceMeters: 2000, Weight: 1.0,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 100, Score: 25},
			Moderate:    Tier{ThresholdMeters: 500, Score: 60},
			Good:        Tier{ThresholdMeters: 2000, Score: 92},
		},
		OutputTemplate: "{count} ancient woodland parcel(s) nearby; nearest is {name} at {distance}",
	},
	{
		ID: "flood_zone_3", Name: "Flood Zone 3",
		Category: CategoryEnvironmental, BufferDistanceMeters: 1000, Weight: 1.1,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 0, Score: 25},
			Moderate:    Tier{ThresholdMeters: 250, Score: 60},
			Good:        Tier{ThresholdMeters: 1000, Score: 95},
		},
		OutputTemplate: "{count} Flood Zone 3 area(s) affect the site; nearest is {name} at {distance}",
	},

	// Heritage designations.
	{
		ID: "listed_building", Name: "Listed Building",
		Category: CategoryHeritage, BufferDistanceMeters: 2000, Weight: 0.9,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 250, Score: 30},
			Moderate:    Tier{ThresholdMeters: 1000, Score: 65},
			Good:        Tier{ThresholdMeters: 2000, Score: 92},
		},
		OutputTemplate: "{count} listed building(s) within the setting buffer; nearest is {name} at {distance}",
	},
	{
		ID: "scheduled_monument", Name: "Scheduled Monument",
		Category: CategoryHeritage, BufferDistanceMeters: 3000, Weight: 1.0,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 500, Score: 20},
			Moderate:    Tier{ThresholdMeters: 1500, Score: 55},
			Good:        Tier{ThresholdMeters: 3000, Score: 90},
		},
		OutputTemplate: "{count} scheduled monument(s) nearby; nearest is {name} at {distance}",
	},
	{
		ID: "conservation_area", Name: "Conservation Area",
		Category: CategoryHeritage, BufferDistanceMeters: 1500, Weight: 0.8,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 100, Score: 35},
			Moderate:    Tier{ThresholdMeters: 750, Score: 65},
			Good:        Tier{ThresholdMeters: 1500, Score: 92},
		},
		OutputTemplate: "{count} conservation area(s) nearby; nearest is {name} at {distance}",
	},
	{
		ID: "registered_park_garden", Name: "Registered Park and Garden",
		Category: CategoryHeritage, BufferDistanceMeters: 2000, Weight: 0.7,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 250, Score: 35},
			Moderate:    Tier{ThresholdMeters: 1000, Score: 65},
			Good:        Tier{ThresholdMeters: 2000, Score: 92},
		},
		OutputTemplate: "{count} registered park(s)/garden(s) nearby; nearest is {name} at {distance}",
	},

	// Landscape designations.
	{
		ID: "national_park", Name: "National Park",
		Category: CategoryLandscape, BufferDistanceMeters: 5000, Weight: 1.2,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 500, Score: 15},
			Moderate:    Tier{ThresholdMeters: 2500, Score: 50},
			Good:        Tier{ThresholdMeters: 5000, Score: 90},
		},
		OutputTemplate: "{count} national park boundary segment(s) nearby; nearest is {name} at {distance}",
	},
	{
		ID: "aonb", Name: "Area of Outstanding Natural Beauty",
		Category: CategoryLandscape, BufferDistanceMeters: 5000, Weight: 1.1,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 500, Score: 20},
			Moderate:    Tier{ThresholdMeters: 2500, Score: 55},
			Good:        Tier{ThresholdMeters: 5000, Score: 90},
		},
		OutputTemplate: "{count} AONB area(s) nearby; nearest is {name} at {distance}",
	},

	// Planning constraints.
	{
		ID: "green_belt", Name: "Green Belt",
		Category: CategoryPlanning, BufferDistanceMeters: 1000, Weight: 1.0,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 0, Score: 10},
			Moderate:    Tier{ThresholdMeters: 500, Score: 60},
			Good:        Tier{ThresholdMeters: 1000, Score: 95},
		},
		OutputTemplate: "{count} Green Belt parcel(s) affect the site; nearest is {name} at {distance}",
	},
	{
		ID: "residential_proximity", Name: "Residential Proximity",
		Category: CategoryPlanning, BufferDistanceMeters: 1000, Weight: 0.9,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 100, Score: 30},
			Moderate:    Tier{ThresholdMeters: 400, Score: 65},
			Good:        Tier{ThresholdMeters: 1000, Score: 95},
		},
		OutputTemplate: "{count} residential area(s) within screening distance; nearest is {name} at {distance}",
	},
	{
		ID: "public_right_of_way", Name: "Public Right of Way",
		Category: CategoryPlanning, BufferDistanceMeters: 500, Weight: 0.5,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 0, Score: 45},
			Moderate:    Tier{ThresholdMeters: 100, Score: 70},
			Good:        Tier{ThresholdMeters: 500, Score: 95},
		},
		OutputTemplate: "{count} public right(s) of way nearby; nearest is {name} at {distance}",
	},
	{
		ID: "best_most_versatile_land", Name: "Best and Most Versatile Agricultural Land",
		Category: CategoryPlanning, BufferDistanceMeters: 500, Weight: 0.8,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 0, Score: 35},
			Moderate:    Tier{ThresholdMeters: 250, Score: 70},
			Good:        Tier{ThresholdMeters: 500, Score: 95},
		},
		OutputTemplate: "{count} grade 1-3a land parcel(s) affect the site; nearest is {name} at {distance}",
	},

	// Infrastructure. Connection infrastructure is scored on its adverse
	// reading only (compound land take, conductor clearance corridors,
	// frontage works); connection opportunity is reported through the
	// output template, not the score, so these stay monotone with
	// distance like every other entry.
	{
		ID: "grid_substation", Name: "Grid Substation",
		Category: CategoryInfrastructure, BufferDistanceMeters: 10000, Weight: 1.0,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 0, Score: 50},
			Moderate:    Tier{ThresholdMeters: 3000, Score: 75},
			Good:        Tier{ThresholdMeters: 10000, Score: 90},
		},
		OutputTemplate: "{count} substation(s) within grid-connection range; nearest is {name} at {distance}",
	},
	{
		ID: "overhead_line", Name: "Overhead Transmission Line",
		Category: CategoryInfrastructure, BufferDistanceMeters: 5000, Weight: 0.8,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 0, Score: 40},
			Moderate:    Tier{ThresholdMeters: 1500, Score: 70},
			Good:        Tier{ThresholdMeters: 5000, Score: 90},
		},
		OutputTemplate: "{count} overhead line(s) within connection range; nearest is {name} at {distance}",
	},
	{
		ID: "aerodrome_safeguarding", Name: "Aerodrome Safeguarding Zone",
		Category: CategoryInfrastructure, BufferDistanceMeters: 15000, Weight: 0.7,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 3000, Score: 30},
			Moderate:    Tier{ThresholdMeters: 8000, Score: 65},
			Good:        Tier{ThresholdMeters: 15000, Score: 90},
		},
		OutputTemplate: "{count} safeguarded aerodrome(s) nearby; nearest is {name} at {distance}",
	},
	{
		ID: "major_road", Name: "Major Road",
		Category: CategoryInfrastructure, BufferDistanceMeters: 5000, Weight: 0.6,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 0, Score: 55},
			Moderate:    Tier{ThresholdMeters: 2000, Score: 75},
			Good:        Tier{ThresholdMeters: 5000, Score: 90},
		},
		OutputTemplate: "{count} A-road/motorway segment(s) nearby; nearest is {name} at {distance}",
	},

	// Climatology and orography.
	{
		ID: "low_irradiance_zone", Name: "Low Irradiance Zone",
		Category: CategoryClimatology, BufferDistanceMeters: 0, Weight: 0.9,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 0, Score: 30},
			Moderate:    Tier{ThresholdMeters: 1000, Score: 65},
			Good:        Tier{ThresholdMeters: 5000, Score: 95},
		},
		OutputTemplate: "{count} low-irradiance zone(s) overlap the site; nearest is {name} at {distance}",
	},
	{
		ID: "steep_slope", Name: "Steep Slope",
		Category: CategoryOrography, BufferDistanceMeters: 0, Weight: 0.8,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 0, Score: 25},
			Moderate:    Tier{ThresholdMeters: 250, Score: 65},
			Good:        Tier{ThresholdMeters: 1000, Score: 95},
		},
		OutputTemplate: "{count} steep-slope area(s) affect the site; nearest is {name} at {distance}",
	},

	// Economic.
	{
		ID: "high_land_value", Name: "High Land Value Area",
		Category: CategoryEconomic, BufferDistanceMeters: 0, Weight: 0.5,
		Scoring: Scoring{
			Challenging: Tier{ThresholdMeters: 0, Score: 40},
			Moderate:    Tier{ThresholdMeters: 500, Score: 70},
			Good:        Tier{ThresholdMeters: 2000, Score: 95},
		},
		OutputTemplate: "{count} high land value area(s) overlap the site; nearest is {name} at {distance}",
	},
}

// Default returns the built-in UK constraint catalog. The entries are
// validated at package init, so failure here is a programmer error.
func Default() *Catalog {
	c, err := New(defaultEntries)
	if err != nil {
		panic(err)
	}
	return c
}
