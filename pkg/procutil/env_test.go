package procutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookupBoolEnv(t *testing.T) {
	const name = EnvVar("RULESHEET_TEST_BOOL")
	for testName, tc := range map[string]struct {
		value        string
		set          bool
		defaultValue bool
		want         bool
	}{
		"unset uses default": {defaultValue: true, want: true},
		"true":               {value: "true", set: true, want: true},
		"TRUE":               {value: "TRUE", set: true, want: true},
		"one":                {value: "1", set: true, want: true},
		"false":              {value: "false", set: true, defaultValue: true, want: false},
		"zero":               {value: "0", set: true, defaultValue: true, want: false},
		"garbage":            {value: "yes", set: true, defaultValue: true, want: true},
	} {
		t.Run(testName, func(t *testing.T) {
			if tc.set {
				t.Setenv(string(name), tc.value)
			}
			got := LookupBoolEnv(name, tc.defaultValue)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestLookupEnv(t *testing.T) {
	t.Setenv(string(RULESHEET_LOG_LEVEL), "warn")
	got, ok := LookupEnv(RULESHEET_LOG_LEVEL)
	if !ok || got != "warn" {
		t.Errorf("LookupEnv: got %q, %v", got, ok)
	}
}
