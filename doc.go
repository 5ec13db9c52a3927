// Package intl is a stable-contract internationalization library over
// golang.org/x/text.
//
// The functionality lives in the pkg/ packages, one per area: locale,
// collator, search, brkiter, normalizer, ustring, uchar, uset, timezone,
// calendar, datefmt, numfmt, plural, patterngen, measure, alphaidx and
// utmscale. They share the error taxonomy of pkg/status, the handle
// lifecycle of pkg/handle, the caller-buffer protocol of pkg/buffer and the
// string enumerations of pkg/enum. pkg/abi exposes the same operations as a
// flat surface of integer handles and status codes.
//
// This package configures the process-wide state those packages share:
//
//	cfg, err := intl.LoadConfig("intl.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rt, err := intl.New(intl.WithConfig(cfg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close()
//
// The runtime installs the logger used by library internals, the time zone
// database, the locale data registry and the default locale and time zone.
// Close restores what was there before and reports handles that were never
// closed.
//
// # Configuration
//
// Settings come from an optional YAML file overlaid by INTL_* environment
// variables:
//
//	INTL_LOCALE              default locale, e.g. de_DE
//	INTL_TIMEZONE            default time zone, e.g. Europe/Berlin
//	INTL_ZONEINFO_DIR        zoneinfo tree, else $ZONEINFO, the system tree or embedded data
//	INTL_LOCALEDATA_DIR      directory of locale data YAML files
//	INTL_LOG_LEVEL           debug, info, warn or error
//	INTL_LOG_FORMAT          json or text
//	INTL_CACHE_TTL           lifetime of cached zone listings and the character name index
//	INTL_SENTRY_DSN          forward warnings and errors to Sentry
//	INTL_SENTRY_ENVIRONMENT  Sentry environment
package intl
