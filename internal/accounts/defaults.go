package accounts

import "github.com/ledgerline-dev/ledgerline/internal/model"

// DefaultChart returns the default chart of accounts for new books.
// Codes group by leading digit: 1xxx assets, 2xxx liabilities, 3xxx equity,
// 4xxx revenue, 5xxx expenses. The single-digit accounts are category roots
// and cannot be posted to.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: "1", Name: "Assets", Category: model.CategoryAsset},
		{Code: "2", Name: "Liabilities", Category: model.CategoryLiability},
		{Code: "3", Name: "Equity", Category: model.CategoryEquity},
		{Code: "4", Name: "Revenue", Category: model.CategoryRevenue},
		{Code: "5", Name: "Expenses", Category: model.CategoryExpense},

		{Code: "1000", Name: "Cash", Category: model.CategoryAsset, ParentCode: "1", Description: "Primary checking account"},
		{Code: "1010", Name: "Petty Cash", Category: model.CategoryAsset, ParentCode: "1"},
		{Code: "1100", Name: "Accounts Receivable", Category: model.CategoryAsset, ParentCode: "1"},
		{Code: "1200", Name: "Inventory", Category: model.CategoryAsset, ParentCode: "1"},
		{Code: "2000", Name: "Accounts Payable", Category: model.CategoryLiability, ParentCode: "2"},
		{Code: "2100", Name: "Credit Card", Category: model.CategoryLiability, ParentCode: "2", Description: "Business credit card"},
		{Code: "2200", Name: "Taxes Payable", Category: model.CategoryLiability, ParentCode: "2"},
		{Code: "3000", Name: "Owner's Equity", Category: model.CategoryEquity, ParentCode: "3"},
		{Code: "4000", Name: "Sales Revenue", Category: model.CategoryRevenue, ParentCode: "4"},
		{Code: "4100", Name: "Service Revenue", Category: model.CategoryRevenue, ParentCode: "4"},
		{Code: "5000", Name: "Cost of Sales", Category: model.CategoryExpense, ParentCode: "5"},
		{Code: "5100", Name: "Software & Subscriptions", Category: model.CategoryExpense, ParentCode: "5"},
		{Code: "5200", Name: "Office Supplies", Category: model.CategoryExpense, ParentCode: "5"},
		{Code: "5300", Name: "Professional Services", Category: model.CategoryExpense, ParentCode: "5", Description: "Legal, accounting, consulting"},
		{Code: "5900", Name: "Tax Expense", Category: model.CategoryExpense, ParentCode: "5"},
	}
}
