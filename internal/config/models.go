package config

// ServerConfig represents the configuration for the HTTP API server
type ServerConfig struct {
	Mode           string
	ListenAddress  string
	APIKey         string
	CORSOrigins    []string
	RateLimitRPS   int
	RateLimitBurst int
}

// SMTPConfig represents the configuration for the SMTP gateway
type SMTPConfig struct {
	ListenAddress   string
	UpstreamAddress string
	UpstreamPort    int
	BlockCritical   bool
	SeverityHeader  string
	ScoreHeader     string
	TypeHeader      string
	TrustedDomains  []string
}

// AnalyzerConfig represents the configuration for the scoring engine
type AnalyzerConfig struct {
	ModelVersion     string
	MaxContentLength int
}

// DemoConfig represents the demo-data seeding configuration
type DemoConfig struct {
	Enabled bool
	Seed    int64
	Records int
}

// GetServer returns the HTTP server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		Mode:           c.GetString("server.mode"),
		ListenAddress:  c.GetString("server.listen_address"),
		APIKey:         c.GetString("server.api_key"),
		CORSOrigins:    c.GetStringSlice("server.cors_origins"),
		RateLimitRPS:   c.GetInt("server.rate_limit_rps"),
		RateLimitBurst: c.GetInt("server.rate_limit_burst"),
	}
}

// GetSMTP returns the SMTP gateway configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		ListenAddress:   c.GetString("smtp.listen_address"),
		UpstreamAddress: c.GetString("smtp.upstream_address"),
		UpstreamPort:    c.GetInt("smtp.upstream_port"),
		BlockCritical:   c.GetBool("smtp.block_critical"),
		SeverityHeader:  c.GetString("smtp.severity_header"),
		ScoreHeader:     c.GetString("smtp.score_header"),
		TypeHeader:      c.GetString("smtp.type_header"),
		TrustedDomains:  c.GetStringSlice("smtp.trusted_domains"),
	}
}

// GetAnalyzer returns the scoring engine configuration
func (c *Config) GetAnalyzer() AnalyzerConfig {
	return AnalyzerConfig{
		ModelVersion:     c.GetString("analyzer.model_version"),
		MaxContentLength: c.GetInt("analyzer.max_content_length"),
	}
}

// GetDemo returns the demo seeding configuration
func (c *Config) GetDemo() DemoConfig {
	return DemoConfig{
		Enabled: c.GetBool("app.demo_mode"),
		Seed:    c.GetInt64("demo.seed"),
		Records: c.GetInt("demo.records"),
	}
}
