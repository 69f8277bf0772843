package dto

// SeedResult reports what the demo data seeder created
type SeedResult struct {
	Users          int `json:"users"`
	Categories     int `json:"categories"`
	Transactions   int `json:"transactions"`
	RecurringRules int `json:"recurring_rules"`
	Budgets        int `json:"budgets"`
}
