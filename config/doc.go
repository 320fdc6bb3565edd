// Package config holds the engine's tunable limits -- max-path-limit,
// max-document-size, and hash-table-min-size -- and wires them to CLI
// flags and YAML configuration files the same way the rest of this
// module's packages do, via [Flags]/[Config] pairing and
// [Config.RegisterFlags].
package config
