package models

// Transaction types
const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Date layouts
const (
	DateLayoutISO = "2006-01-02"
)

// Default category names, as they appear in documents written by every
// generation of the application.
const (
	CategoryFood       = "Alimentation"
	CategoryHousing    = "Logement"
	CategoryTransport  = "Transport"
	CategoryUtilities  = "Factures"
	CategoryHealth     = "Santé"
	CategoryLeisure    = "Loisirs"
	CategoryOther      = "Autre"
	CategorySalary     = "Salaire"
	CategoryInvestment = "Investissement"
)

// File permissions
const (
	PermissionDataFile   = 0600
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
