// internal/config/config.go
package config

import "github.com/kelseyhightower/envconfig"

// Defaults are environment-provided flag defaults. Flags always win;
// these only seed the registered default values.
type Defaults struct {
	KeepConsequence string `envconfig:"VEPTAB_KEEP_CONSEQUENCE" default:"missense_variant,stop_gained"`
	OverviewHead    int    `envconfig:"VEPTAB_OVERVIEW_HEAD" default:"5"`
	GzipOut         bool   `envconfig:"VEPTAB_GZIP_OUT"`
	LogJSON         bool   `envconfig:"VEPTAB_LOG_JSON"`
}

// FromEnv reads VEPTAB_* variables; malformed values fall back to the
// built-in defaults rather than failing tool startup.
func FromEnv() Defaults {
	var d Defaults
	if err := envconfig.Process("", &d); err != nil {
		return Defaults{
			KeepConsequence: "missense_variant,stop_gained",
			OverviewHead:    5,
		}
	}
	return d
}
