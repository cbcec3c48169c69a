package model

// DefaultTables returns the built-in lookup tables.
// Each call returns a fresh copy so callers may modify the result.
func DefaultTables() TablesConfig {
	return TablesConfig{
		States: []StateVariants{
			{Name: "connecticut", Variants: []string{"connecticut", "ct", "conn", "conn.", "state of connecticut", "connecticut county", "ct.", "hartford"}},
			{Name: "delaware", Variants: []string{"delaware", "de", "state of delaware", "de."}},
			{Name: "georgia", Variants: []string{"georgia", "ga", "state of georgia", "ga."}},
			{Name: "maryland", Variants: []string{"maryland", "md", "state of maryland", "md."}},
			{Name: "massachusetts", Variants: []string{"massachusetts", "ma", "mass", "mass.", "massachusette", "massachusets", "massachuset", "state of massachusetts", "dana, massachusetts", "dighton, bristol, massachusetts", "middleser", "ma.", "boston"}},
			{Name: "new hampshire", Variants: []string{"new hampshire", "nh", "n.h", "n.h.", "state of new hampshire", "hillsborough in the state of n.h", "new hampshire co", "n. hampshire", "n. h.", "new-hampshire", "n h"}},
			{Name: "new jersey", Variants: []string{"new jersey", "nj", "n.j", "n.j.", "state of new jersey", "n jersey", "n j"}},
			{Name: "new york", Variants: []string{"new york", "ny", "n.y", "n.y.", "state of new york", "n york", "n. york", "rockland county ss", "rockland county", "hudson n york", "new york co", "n. y.", "rochester n.y.", "chenango", "york", "york albany", "albany"}},
			{Name: "north carolina", Variants: []string{"north carolina", "nc", "n.c", "n.c.", "state of north carolina", "randolph co. n. carolina", "duplin co., north carolina", "n c"}},
			{Name: "pennsylvania", Variants: []string{"pennsylvania", "pa", "pa.", "state of pennsylvania", "penn", "penna", "philadelphia"}},
			{Name: "rhode island", Variants: []string{"rhode island", "ri", "r.i", "r.i.", "state of rhode island", "r island"}},
			{Name: "south carolina", Variants: []string{"south carolina", "sc", "s.c", "s.c.", "state of south carolina", "spartanbg., south carolina", "s. carolina"}},
			{Name: "virginia", Variants: []string{"virginia", "va", "v.a", "v.a.", "state of virginia", "shenandoah in the state of virginia", "washington county, virginia", "va.", "richmond va", "jefferson co. va", "jefferson county, va"}},
			{Name: "mississippi", Variants: []string{"mississippi", "ms", "state of mississippi", "ms."}},
			{Name: "ohio", Variants: []string{"ohio", "oh", "state of ohio", "oh.", "clermont county, washington township"}},
			{Name: "kentucky", Variants: []string{"kentucky", "ky", "state of kentucky", "ky."}},
			{Name: "illinois", Variants: []string{"illinois", "il", "state of illinois", "il."}},
			{Name: "iowa", Variants: []string{"iowa", "ia", "state of iowa", "ia."}},
			{Name: "indiana", Variants: []string{"indiana", "in", "state of indiana", "indiana madison", "in.", "ind.", "ind"}},
			{Name: "vermont", Variants: []string{"vermont", "vt", "state of vermont", "windsor, vermont", "vt."}},
			{Name: "tennessee", Variants: []string{"tennessee", "tn", "tn.", "state of tennessee"}},
			{Name: "maine", Variants: []string{"maine", "me", "state of maine", "me.", "mame"}},
			{Name: "alabama", Variants: []string{"alabama", "al", "state of alabama", "al."}},
			{Name: "michigan", Variants: []string{"michigan", "mi", "state of michigan", "mi."}},
			{Name: "missouri", Variants: []string{"missouri", "mo", "state of missouri", "mo."}},
			{Name: "washington d.c.", Variants: []string{"washington d.c.", "washington dc", "washington d.c", "washington dc.", "washington city", "washington county d.c."}},
		},
		Frequencies: []FrequencyVariants{
			{Term: FrequencyAnnual, Variants: []string{"per annum", "per anum", "annual", "per an", "per ann", "per ann.", "per anm", "per annund", "per an.", "per year", "per lennum", "per an:"}},
			{Term: FrequencyMonthly, Variants: []string{"per month", "per mo", "per months"}},
			{Term: FrequencySemiAnnual, Variants: []string{"semi-annual", "semi-annually", "semiannual", "semi-anl.", "semi-anl", "semi annually"}},
		},
		FileTypeTokens: map[string]string{
			"S":   string(FileTypeSurvivor),
			"R":   string(FileTypeRejected),
			"W":   string(FileTypeWidow),
			"T":   string(FileTypeTrust),
			"BLW": string(FileTypeBLW),
			"B":   string(FileTypeBLW),
			"OW":  string(FileTypeOldWar),
			"NA":  string(FileTypeNAAccession),
		},
		Categories: []CategoryTerms{
			{Label: CategorySoldier, Tokens: []string{"s", "sur", "t"}},
			{Label: CategoryRejected, Tokens: []string{"r", "k", "p", "rej", "rejected"}},
			{Label: CategoryWidow, Tokens: []string{"w", "wid", "widow"}},
			{Label: CategoryBountyLand, Tokens: []string{"b", "bl", "wt", "b l wt", "bounty land", "blwt"}},
			{Label: CategoryOldWar, Tokens: []string{"old act", "old war", "o w", "ow"}},
			{Label: CategoryNAAccession, Tokens: []string{"n a acc no", "acc no"}},
			{Label: CategoryNARAAdmin, Tokens: []string{"nara archival administrative sheets"}},
		},
		UnknownMarkers: []string{"blank", "illegible", "ctf"},
		TitleStopwords: []string{"for", "file", "see"},
		OCRCorrections: map[string]string{
			"teh":      "the",
			"adn":      "and",
			"nad":      "and",
			"taht":     "that",
			"thier":    "their",
			"recieve":  "receive",
			"occured":  "occurred",
			"seperate": "separate",
		},
		KnownActs: []KnownAct{
			{Date: "1818-03-18", Description: "Service pensions for needy Continental Army and Navy veterans"},
			{Date: "1820-05-01", Description: "Means test imposed on 1818 pensioners"},
			{Date: "1828-05-15", Description: "Full pay for surviving Continental officers and soldiers"},
			{Date: "1832-06-07", Description: "Service pensions extended to militia and state troops with two years' service"},
			{Date: "1836-07-04", Description: "Widows whose husbands qualified under the 1832 act"},
			{Date: "1838-07-07", Description: "Widows married before January 1794"},
			{Date: "1843-03-03", Description: "Widows' pensions renewed"},
			{Date: "1848-07-29", Description: "Widows married before January 1800"},
			{Date: "1853-02-03", Description: "Widows regardless of marriage date"},
			{Date: "1855-03-03", Description: "Bounty land of 160 acres for veterans and widows"},
		},
		CPI: map[string]float64{
			"1818": 46,
			"1820": 42,
			"1828": 33,
			"1832": 30,
			"1836": 33,
			"1838": 32,
			"1843": 28,
			"1855": 28,
		},
		CPITarget: 324.8,
	}
}
