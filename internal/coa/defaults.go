package coa

// DefaultChart is a minimal distribution-company chart of accounts usable with
// BulkInitialize. Only leaf accounts accept entries.
var DefaultChart = []AccountDefinition{
	{Code: "1", Name: "Assets", Type: AccountTypeAsset},
	{Code: "1.1", Name: "Current Assets", Type: AccountTypeAsset},
	{Code: "1.1.1", Name: "Cash and Banks", Type: AccountTypeAsset},
	{Code: "1.1.1.001", Name: "Cash", Type: AccountTypeAsset, AcceptsEntries: true},
	{Code: "1.1.1.002", Name: "Bank Checking", Type: AccountTypeAsset, AcceptsEntries: true},
	{Code: "1.1.2", Name: "Receivables", Type: AccountTypeAsset},
	{Code: "1.1.2.001", Name: "Accounts Receivable", Type: AccountTypeAsset, AcceptsEntries: true},
	{Code: "1.1.3", Name: "Inventory", Type: AccountTypeAsset},
	{Code: "1.1.3.001", Name: "Merchandise", Type: AccountTypeAsset, AcceptsEntries: true},
	{Code: "1.1.4", Name: "Tax Credits", Type: AccountTypeAsset},
	{Code: "1.1.4.001", Name: "VAT Credit", Type: AccountTypeAsset, AcceptsEntries: true},

	{Code: "2", Name: "Liabilities", Type: AccountTypeLiability},
	{Code: "2.1", Name: "Current Liabilities", Type: AccountTypeLiability},
	{Code: "2.1.1", Name: "Payables", Type: AccountTypeLiability},
	{Code: "2.1.1.001", Name: "Accounts Payable", Type: AccountTypeLiability, AcceptsEntries: true},
	{Code: "2.1.2", Name: "Tax Liabilities", Type: AccountTypeLiability},
	{Code: "2.1.2.001", Name: "VAT Payable", Type: AccountTypeLiability, AcceptsEntries: true},

	{Code: "3", Name: "Equity", Type: AccountTypeEquity},
	{Code: "3.1", Name: "Capital", Type: AccountTypeEquity},
	{Code: "3.1.1", Name: "Owner Capital", Type: AccountTypeEquity},
	{Code: "3.1.1.001", Name: "Paid-in Capital", Type: AccountTypeEquity, AcceptsEntries: true},

	{Code: "4", Name: "Income", Type: AccountTypeIncome},
	{Code: "4.1", Name: "Operating Income", Type: AccountTypeIncome},
	{Code: "4.1.1", Name: "Sales", Type: AccountTypeIncome},
	{Code: "4.1.1.001", Name: "Merchandise Sales", Type: AccountTypeIncome, AcceptsEntries: true},

	{Code: "5", Name: "Expenses", Type: AccountTypeExpense},
	{Code: "5.1", Name: "Operating Expenses", Type: AccountTypeExpense},
	{Code: "5.1.1", Name: "Purchases and Services", Type: AccountTypeExpense},
	{Code: "5.1.1.001", Name: "Merchandise Purchases", Type: AccountTypeExpense, AcceptsEntries: true},
	{Code: "5.1.1.002", Name: "General Expenses", Type: AccountTypeExpense, AcceptsEntries: true},
}
