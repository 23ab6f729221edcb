package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	TextfilePath string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics() MetricsConfig {
	textfile := envOrDefault(envMetricsTextfile, "")
	endpoint := envOrDefault(envOtelEndpoint, "")
	return MetricsConfig{
		// A one-shot CLI only needs instruments when something will read them.
		Enabled:      boolEnvOrDefault(envMetricsOn, textfile != "" || endpoint != ""),
		TextfilePath: textfile,
		OtlpEndpoint: endpoint,
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
}
