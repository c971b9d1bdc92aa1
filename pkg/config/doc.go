// Package config loads env-tagged configuration structs.
//
// Load parses the process environment (after a one-time .env read) into
// the given struct and caches the result per type, so every package can
// call Load for its own Config without coordinating startup order.
//
//	var cfg session.Config
//	config.MustLoad(&cfg)
package config
