package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Hook:    HookIdentity,
		NoColor: BoolPtr(false),
		Rate:    0,
		Debug:   BoolPtr(false),
		Report:  "",
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.Hook == defaults.Hook &&
		c.GetNoColor() == defaults.GetNoColor() &&
		c.Rate == defaults.Rate &&
		c.GetDebug() == defaults.GetDebug() &&
		c.Report == defaults.Report
}
