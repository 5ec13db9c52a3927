package intl

import "errors"

var (
	// ErrConfigFile is returned when the config file cannot be read.
	ErrConfigFile = errors.New("intl: cannot read config file")

	// ErrConfigParse is returned when the config file or environment holds invalid values.
	ErrConfigParse = errors.New("intl: invalid config")

	// ErrClosed is returned by Runtime methods called after Close.
	ErrClosed = errors.New("intl: runtime closed")

	// ErrLocaleData is returned when locale data overrides fail to load.
	ErrLocaleData = errors.New("intl: cannot load locale data")

	// ErrDefaultLocale is returned when the configured locale is not a valid ID.
	ErrDefaultLocale = errors.New("intl: invalid default locale")

	// ErrDefaultZone is returned when the configured time zone is unknown.
	ErrDefaultZone = errors.New("intl: invalid default time zone")

	// ErrRuntimeRunning is returned by New while another Runtime is installed.
	ErrRuntimeRunning = errors.New("intl: another runtime is installed")
)
