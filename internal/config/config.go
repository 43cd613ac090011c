package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level ledgerline.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Currency CurrencyConfig `yaml:"currency"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
	Reports  ReportsConfig  `yaml:"reports"`
	Banks    []BankAccount  `yaml:"bank_accounts,omitempty"`
	Git      GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// CurrencyConfig fixes the base currency all reporting figures are
// expressed in, with optional minor-unit overrides per currency code.
type CurrencyConfig struct {
	Base       string         `yaml:"base"`
	MinorUnits map[string]int `yaml:"minor_units,omitempty"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// ReportsConfig points at statement layout files, relative to the books
// root.
type ReportsConfig struct {
	BalanceSheet    string `yaml:"balance_sheet"`
	IncomeStatement string `yaml:"income_statement"`
}

// BankAccount maps a bank feed to a chart-of-accounts entry for import.
type BankAccount struct {
	Name        string `yaml:"name"`
	Format      string `yaml:"format"`
	LastFour    string `yaml:"last_four"`
	AccountCode string `yaml:"account_code"`
}

// GitConfig controls git integration for the books directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a ledgerline.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Currency.Base == "" {
		return nil, fmt.Errorf("config %s: currency.base is required", path)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for new books.
func Default(businessName, baseCurrency string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Currency: CurrencyConfig{
			Base: baseCurrency,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Reports: ReportsConfig{
			BalanceSheet:    "reports/balance-sheet.yaml",
			IncomeStatement: "reports/income-statement.yaml",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Ledgerline",
			AuthorEmail: "books@ledgerline.dev",
		},
	}
}
