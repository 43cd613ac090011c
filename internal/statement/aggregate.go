package statement

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Line is one member account's figure within a group.
type Line struct {
	Code   string
	Amount decimal.Decimal
	Prior  decimal.Decimal
	Delta  decimal.Decimal
}

// Group is one reporting line: a named bucket of accounts with a subtotal.
type Group struct {
	Name     string
	Role     Role
	Lines    []Line
	Subtotal decimal.Decimal
	Prior    decimal.Decimal
	Delta    decimal.Decimal
}

// Statement is a fully aggregated report: ordered groups, totals, derived
// income lines (for KindIncome), and the accounts no group claimed. It is
// recomputed per request and never persisted.
type Statement struct {
	Name   string
	Kind   Kind
	Groups []Group

	GrandTotal decimal.Decimal
	PriorTotal decimal.Decimal
	TotalDelta decimal.Decimal

	// Derived income-statement lines; zero for KindTotal layouts.
	ProfitBeforeTax      decimal.Decimal
	PriorProfitBeforeTax decimal.Decimal
	NetProfit            decimal.Decimal
	PriorNetProfit       decimal.Decimal

	// Unassigned lists account codes with balances that matched no group:
	// dropped from totals, surfaced so configuration gaps stay visible.
	Unassigned []string

	HasPrior bool
}

// Aggregate groups balances per the layout. Balances are expected signed by
// each account's normal side (see ledger.Balances), so group subtotals are
// plain sums and a contra account nets instead of adding. A nil prior map
// means no comparison; with one, every group and total carries a prior
// figure and delta, and groups with no accounts in a period compare against
// zero.
func Aggregate(layout Layout, balances, prior map[string]decimal.Decimal) Statement {
	stmt := Statement{
		Name:     layout.Name,
		Kind:     layout.Kind,
		HasPrior: prior != nil,
	}

	codes := unionCodes(balances, prior)
	claimed := make(map[string]bool, len(codes))

	for _, def := range layout.Groups {
		group := Group{Name: def.Name, Role: def.Role}
		for _, code := range codes {
			if claimed[code] || !def.Matches(code) {
				continue
			}
			claimed[code] = true

			line := Line{
				Code:   code,
				Amount: balances[code],
				Prior:  prior[code],
			}
			line.Delta = line.Amount.Sub(line.Prior)
			group.Lines = append(group.Lines, line)
			group.Subtotal = group.Subtotal.Add(line.Amount)
			group.Prior = group.Prior.Add(line.Prior)
		}
		group.Delta = group.Subtotal.Sub(group.Prior)
		stmt.Groups = append(stmt.Groups, group)
	}

	for _, code := range codes {
		if !claimed[code] {
			stmt.Unassigned = append(stmt.Unassigned, code)
		}
	}

	switch layout.Kind {
	case KindIncome:
		stmt.ProfitBeforeTax, stmt.NetProfit = deriveIncome(stmt.Groups, func(g Group) decimal.Decimal { return g.Subtotal })
		stmt.PriorProfitBeforeTax, stmt.PriorNetProfit = deriveIncome(stmt.Groups, func(g Group) decimal.Decimal { return g.Prior })
		stmt.GrandTotal = stmt.NetProfit
		stmt.PriorTotal = stmt.PriorNetProfit
	default:
		for _, g := range stmt.Groups {
			stmt.GrandTotal = stmt.GrandTotal.Add(g.Subtotal)
			stmt.PriorTotal = stmt.PriorTotal.Add(g.Prior)
		}
	}
	stmt.TotalDelta = stmt.GrandTotal.Sub(stmt.PriorTotal)

	return stmt
}

// deriveIncome computes profit before tax (income - expense) and net profit
// (profit before tax - tax) over one period's group figures.
func deriveIncome(groups []Group, figure func(Group) decimal.Decimal) (pbt, net decimal.Decimal) {
	var income, expense, tax decimal.Decimal
	for _, g := range groups {
		switch g.Role {
		case RoleIncome:
			income = income.Add(figure(g))
		case RoleTax:
			tax = tax.Add(figure(g))
		default:
			expense = expense.Add(figure(g))
		}
	}
	pbt = income.Sub(expense)
	net = pbt.Sub(tax)
	return pbt, net
}

// unionCodes returns the sorted union of account codes across both periods.
// Sorting keeps member lines deterministic; account codes are chosen to be
// sortable strings.
func unionCodes(balances, prior map[string]decimal.Decimal) []string {
	seen := make(map[string]bool, len(balances)+len(prior))
	var codes []string
	for code := range balances {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	for code := range prior {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}
