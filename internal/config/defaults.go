package config

const (
	defaultConfigPath       = "~/.config/lyricsync/config.toml"
	projectConfigName       = "lyricsync.toml"
	defaultLogDir           = "~/.local/share/lyricsync/logs"
	defaultStateDir         = "~/.local/state/lyricsync"
	defaultExportDir        = "~/lyrics"
	defaultAPIBind          = "127.0.0.1:7488"
	defaultNudgeStep        = 0.1
	defaultLRCTitle         = "Song Title"
	defaultLRCArtist        = "Artist Name"
	defaultSRTFinalDuration = 3.0
	defaultExportFormat     = "lrc"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

var exportFormats = []string{"json", "lrc", "srt"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			StateDir:  defaultStateDir,
			ExportDir: defaultExportDir,
			APIBind:   defaultAPIBind,
		},
		Capture: Capture{
			NudgeStep: defaultNudgeStep,
		},
		Export: Export{
			LRCTitle:         defaultLRCTitle,
			LRCArtist:        defaultLRCArtist,
			SRTFinalDuration: defaultSRTFinalDuration,
			DefaultFormat:    defaultExportFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
