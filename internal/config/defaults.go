package config

const (
	defaultDataPath     = "~/.local/share/posekit/data"
	defaultSkeletonPath = "~/.config/posekit/skeleton.yaml"
	defaultLogDir       = "~/.local/share/posekit/logs"
	defaultMetadataFile = "sessions.csv"
	defaultIDColumn     = "id"
	defaultPathColumn   = "path"
	defaultMergeFormat  = "npy"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataPath:     defaultDataPath,
			SkeletonPath: defaultSkeletonPath,
			MetadataFile: defaultMetadataFile,
			LogDir:       defaultLogDir,
		},
		Metadata: Metadata{
			Delimiter:  ",",
			IDColumn:   defaultIDColumn,
			PathColumn: defaultPathColumn,
		},
		Merge: Merge{
			Format: defaultMergeFormat,
		},
		Catalog: Catalog{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
