package classification

import "homeledger/internal/model"

type defaultEntry struct {
	labelEN string
	labelPL string
}

type defaultGroup struct {
	name            string
	decorationColor string
	typ             string
	entries         []defaultEntry
}

// defaultCatalog is the starter set provisioned for every new household.
// Entries are seeded with is_deletable=false and is_editable=false so the
// baseline categories survive user cleanup.
var defaultCatalog = []defaultGroup{
	{
		name: "SHOPPING", decorationColor: "#F59E0B", typ: model.TypeExpense,
		entries: []defaultEntry{
			{"Food", "Żywność"},
			{"Takeaway", "Jedzenie na wynos"},
			{"Alcohol", "Alkohol"},
		},
	},
	{
		name: "HOUSING", decorationColor: "#3B82F6", typ: model.TypeExpense,
		entries: []defaultEntry{
			{"Rent", "Czynsz"},
			{"Utilities", "Media"},
			{"Maintenance", "Utrzymanie"},
		},
	},
	{
		name: "TRANSPORT", decorationColor: "#10B981", typ: model.TypeExpense,
		entries: []defaultEntry{
			{"Public transport", "Transport publiczny"},
			{"Fuel", "Paliwo"},
			{"Car", "Samochód"},
		},
	},
	{
		name: "HEALTHCARE", decorationColor: "#EF4444", typ: model.TypeExpense,
		entries: []defaultEntry{
			{"Doctor", "Lekarz"},
			{"Pharmacy", "Apteka"},
		},
	},
	{
		name: "ENTERTAINMENT", decorationColor: "#8B5CF6", typ: model.TypeExpense,
		entries: []defaultEntry{
			{"Gym", "Siłownia"},
			{"Cinema", "Kino"},
			{"Books", "Książki"},
		},
	},
	{
		name: "OTHER", decorationColor: "#6B7280", typ: model.TypeExpense,
		entries: []defaultEntry{
			{"Other", "Inne"},
		},
	},
	{
		name: "SALARY", decorationColor: "#22C55E", typ: model.TypeIncome,
		entries: []defaultEntry{
			{"Full-time", "Etat"},
			{"Part-time", "Praca dodatkowa"},
			{"Freelance", "Freelance"},
		},
	},
	{
		name: "INVESTMENTS", decorationColor: "#0EA5E9", typ: model.TypeIncome,
		entries: []defaultEntry{
			{"Dividends", "Dywidendy"},
			{"Interest", "Odsetki"},
		},
	},
	{
		name: "OTHER_INCOME", decorationColor: "#A3A3A3", typ: model.TypeIncome,
		entries: []defaultEntry{
			{"Rental income", "Wynajem"},
			{"Other", "Inne"},
		},
	},
}

// DefaultClassificationCount is the number of classifications seeded per
// household.
func DefaultClassificationCount() int {
	n := 0
	for _, g := range defaultCatalog {
		n += len(g.entries)
	}
	return n
}
