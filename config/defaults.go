package config

const (
	defaultSourceDir    = "assets"
	defaultTargetDir    = "public/assets"
	defaultQuality      = 85
	defaultQualityAlpha = 85
	defaultSpeed        = 6
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultLogColors    = "auto"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir: defaultSourceDir,
			TargetDir: defaultTargetDir,
		},
		Encoding: Encoding{
			Quality:      defaultQuality,
			QualityAlpha: defaultQualityAlpha,
			Speed:        defaultSpeed,
			Extensions:   []string{".png", ".jpg", ".jpeg"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Colors: defaultLogColors,
		},
	}
}
