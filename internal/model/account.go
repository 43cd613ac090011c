package model

// AccountCategory classifies accounts in the chart of accounts and
// determines the side on which an account's balance naturally increases.
type AccountCategory string

const (
	CategoryAsset     AccountCategory = "asset"
	CategoryLiability AccountCategory = "liability"
	CategoryEquity    AccountCategory = "equity"
	CategoryRevenue   AccountCategory = "revenue"
	CategoryExpense   AccountCategory = "expense"
)

// NormalSide returns the side on which balances of this category increase.
func (c AccountCategory) NormalSide() Side {
	switch c {
	case CategoryAsset, CategoryExpense:
		return SideDebit
	default:
		return SideCredit
	}
}

// Account represents a node in the chart of accounts. Accounts with an
// empty ParentCode are category roots and may not appear on journal lines.
type Account struct {
	Code        string
	Name        string
	Category    AccountCategory
	ParentCode  string // empty = category root
	Description string
}

// Postable reports whether journal lines may reference this account.
// Category roots exist only to structure the chart.
func (a Account) Postable() bool {
	return a.ParentCode != ""
}

// NormalSide returns the account's normal balance side.
func (a Account) NormalSide() Side {
	return a.Category.NormalSide()
}
