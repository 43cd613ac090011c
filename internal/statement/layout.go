// Package statement groups account balances into named report sections with
// subtotals, grand totals and optional prior-period comparison.
package statement

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind selects how a layout's grand total is derived.
type Kind string

const (
	// KindTotal: the grand total is the sum of all group subtotals
	// (balance-sheet style sections such as Total Assets).
	KindTotal Kind = "total"
	// KindIncome: the grand total is net profit, derived from group roles
	// (income - expense - tax).
	KindIncome Kind = "income"
)

// Role classifies a group within an income layout. Groups without a role
// count as expense; roles are ignored by KindTotal layouts.
type Role string

const (
	RoleIncome  Role = "income"
	RoleExpense Role = "expense"
	RoleTax     Role = "tax"
)

// GroupDef maps accounts to one reporting line, by explicit code list
// and/or code prefix. Definitions are ordered; the first group claiming an
// account wins.
type GroupDef struct {
	Name     string   `yaml:"name"`
	Role     Role     `yaml:"role,omitempty"`
	Codes    []string `yaml:"codes,omitempty"`
	Prefixes []string `yaml:"prefixes,omitempty"`
}

// Matches reports whether the group claims the account code.
func (g GroupDef) Matches(code string) bool {
	for _, c := range g.Codes {
		if c == code {
			return true
		}
	}
	for _, p := range g.Prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

// Layout is a versioned statement definition: an ordered list of groups
// plus the total rule. Report shape lives here, not in account-code
// conventions.
type Layout struct {
	Version int        `yaml:"version"`
	Name    string     `yaml:"name"`
	Kind    Kind       `yaml:"kind"`
	Groups  []GroupDef `yaml:"groups"`
}

// LoadLayout reads a layout YAML file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parsing layout %s: %w", path, err)
	}
	if err := layout.validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return &layout, nil
}

// SaveLayout writes a layout YAML file.
func SaveLayout(path string, layout *Layout) error {
	data, err := yaml.Marshal(layout)
	if err != nil {
		return fmt.Errorf("marshaling layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing layout: %w", err)
	}
	return nil
}

func (l *Layout) validate() error {
	switch l.Kind {
	case KindTotal, KindIncome:
	default:
		return fmt.Errorf("unknown kind %q", l.Kind)
	}
	if len(l.Groups) == 0 {
		return fmt.Errorf("no groups defined")
	}
	for i, g := range l.Groups {
		if g.Name == "" {
			return fmt.Errorf("group %d has no name", i+1)
		}
		if len(g.Codes) == 0 && len(g.Prefixes) == 0 {
			return fmt.Errorf("group %q has no codes or prefixes", g.Name)
		}
	}
	return nil
}

// DefaultBalanceSheet is the balance-sheet layout written for new books,
// matching the default chart of accounts.
func DefaultBalanceSheet() *Layout {
	return &Layout{
		Version: 1,
		Name:    "Balance Sheet",
		Kind:    KindTotal,
		Groups: []GroupDef{
			{Name: "Cash", Codes: []string{"1000", "1010"}},
			{Name: "Receivables", Codes: []string{"1100"}},
			{Name: "Inventory", Codes: []string{"1200"}},
			{Name: "Other Assets", Prefixes: []string{"1"}},
			{Name: "Payables", Codes: []string{"2000"}},
			{Name: "Other Liabilities", Prefixes: []string{"2"}},
			{Name: "Equity", Prefixes: []string{"3"}},
		},
	}
}

// DefaultIncomeStatement is the income-statement layout written for new
// books, matching the default chart of accounts.
func DefaultIncomeStatement() *Layout {
	return &Layout{
		Version: 1,
		Name:    "Income Statement",
		Kind:    KindIncome,
		Groups: []GroupDef{
			{Name: "Revenue", Role: RoleIncome, Prefixes: []string{"4"}},
			{Name: "Cost of Sales", Role: RoleExpense, Codes: []string{"5000"}},
			{Name: "Operating Expenses", Role: RoleExpense, Prefixes: []string{"51", "52", "53"}},
			{Name: "Tax", Role: RoleTax, Codes: []string{"5900"}},
		},
	}
}
