package config

const (
	defaultDataDir        = "~/.local/share/packlist"
	defaultBackupDir      = "~/packlist-backups"
	defaultLogDir         = "~/.local/share/packlist/logs"
	defaultStorageBackend = BackendFile
	defaultStorageKey     = "gym-packlist-items"
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			BackupDir: defaultBackupDir,
			LogDir:    defaultLogDir,
		},
		Storage: Storage{
			Backend: defaultStorageBackend,
			Key:     defaultStorageKey,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
