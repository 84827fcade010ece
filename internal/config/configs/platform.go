package configs

// Platform holds the platform-level identities and the starting fee.
type Platform struct {
	// Owner is the caller identity allowed to run platform-only
	// operations (tax, emergency mode, deadline halts, mass refunds).
	Owner string `env:"OWNER,required"`
	// Account receives the platform fee cut on payouts.
	Account string `env:"ACCOUNT,required"`
	// TaxPercent is the initial payout fee percentage (0-100). It can
	// be changed at runtime by the platform owner.
	TaxPercent int64 `env:"TAX_PERCENT" envDefault:"5"`
}
