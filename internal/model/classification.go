package model

// Transaction/classification types. A classification is either an expense
// or an income category; transactions inherit the type of their
// classification.
const (
	TypeExpense = "EXPENSE"
	TypeIncome  = "INCOME"
)

// SupportedLocales lists the label locales every classification carries.
var SupportedLocales = []string{"en", "pl"}

type ClassificationGroup struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DecorationColor string `json:"decoration_color"`
	HouseholdID     int64  `json:"household_id"`
}

type ClassificationLabel struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

type Classification struct {
	ID          int64                 `json:"id"`
	Type        string                `json:"type"`
	GroupID     int64                 `json:"group_id"`
	Labels      []ClassificationLabel `json:"labels"`
	HouseholdID int64                 `json:"household_id"`
	IsDeletable bool                  `json:"is_deletable"`
	IsEditable  bool                  `json:"is_editable"`
}
