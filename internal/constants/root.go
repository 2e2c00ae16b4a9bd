package constants

const (
	AppName           = "dreamlog"
	Version           = "v0.1.0"
	DefaultConfigDir  = "~/.config/dreamlog"
	DefaultConfigPath = "~/.config/dreamlog/dreamlog.db"
	DefaultConfigFile = "~/.config/dreamlog/config.yml"

	// DateFormat is the calendar date format of an entry's selected date (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Storage keys
	EntriesKey     = "dreamFormDataArray"
	PendingEditKey = "dreamToEdit"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dreamlog-"

	// Lock constants
	LockfileName = "dreamlog.lock"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "dreamlog.log"
)
