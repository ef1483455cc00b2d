package config

const (
	defaultConfigPath  = "~/.config/mdpage/config.toml"
	projectConfigName  = "mdpage.toml"
	defaultSource      = "04-WORKFLOW-OVERVIEW.md"
	defaultLang        = "en"
	defaultRendererURL = "https://cdn.jsdelivr.net/npm/marked/marked.min.js"
	defaultHintLabel   = "To save as PDF:"
	defaultHintText    = "Cmd+P (Mac) or Ctrl+P (Windows) → choose \"Save as PDF\" as the destination."
	defaultLogFormat   = "console"
	defaultLogLevel    = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Source: defaultSource,
		},
		Page: Page{
			Lang:        defaultLang,
			RendererURL: defaultRendererURL,
			GFM:         true,
			Breaks:      true,
			HintLabel:   defaultHintLabel,
			HintText:    defaultHintText,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
