package common

import (
	"strings"
	"time"
)

const (
	// ConfigFilePrefix is the prefix of exported configuration files
	ConfigFilePrefix = "lily_wallet_config-"
	// ConfigFileExt is the extension of exported configuration files
	ConfigFileExt = ".txt"
	// ConfigContentType is the MIME type of exported configuration files
	ConfigContentType = "text/plain;charset=utf-8;"

	// TimestampLayout is ISO 8601 with a numeric zone offset, e.g. 2020-06-01T13:04:05+02:00
	TimestampLayout = "2006-01-02T15:04:05Z07:00"
)

// FormatTimestamp formats t with TimestampLayout, keeping t's zone
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ConfigFileName returns lily_wallet_config-<timestamp>.txt
func ConfigFileName(t time.Time) string {
	return ConfigFilePrefix + FormatTimestamp(t) + ConfigFileExt
}

// SplitWords splits a mnemonic into its words
func SplitWords(mnemonic string) []string {
	return strings.Fields(mnemonic)
}

// SafeFileName replaces characters that are not allowed in file names on Windows
// (the timestamp contains ':'). Used only when writing to disk.
func SafeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '-'
		}
		return r
	}, name)
}
