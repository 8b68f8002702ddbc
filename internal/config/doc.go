// Package config manages user-level settings stored at ~/.extreg/config.yaml.
// Values are layered by viper: command-line flags override EXTREG_*
// environment variables, which override the config file, which overrides
// the built-in defaults. Settings name the host module, the directories
// searched for installed modules and the modules already active in the host
// process.
package config
