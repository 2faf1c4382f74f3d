package procutil

import (
	"os"
	"strings"
)

type EnvVar string

const (
	// RULESHEET_LOG_LEVEL names the zerolog level of the default logger
	// (trace, debug, info, warn, error).
	RULESHEET_LOG_LEVEL = EnvVar("RULESHEET_LOG_LEVEL")
	// RULESHEET_DEBUG forces the debug level when true.
	RULESHEET_DEBUG = EnvVar("RULESHEET_DEBUG")
	// RULESHEET_LOG_FILE, if set, is the file logs are appended to instead
	// of stderr.
	RULESHEET_LOG_FILE = EnvVar("RULESHEET_LOG_FILE")
)

func LookupBoolEnv(name EnvVar, defaultValue bool) bool {
	if val, ok := os.LookupEnv(string(name)); ok {
		switch strings.ToLower(val) {
		case "true", "1":
			return true
		case "false", "0":
			return false
		}
	}
	return defaultValue
}

func LookupEnv(name EnvVar) (string, bool) {
	return os.LookupEnv(string(name))
}
