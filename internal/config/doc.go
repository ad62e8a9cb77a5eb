// Package config provides process configuration for muzbot.
//
// All settings come from the environment; the only required input is
// BOT_TOKEN. Use FromEnv at startup:
//
//	settings, err := config.FromEnv()
//	if err != nil {
//	    // fatal: the bot cannot run unconfigured
//	}
package config
