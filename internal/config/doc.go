// Package config provides configuration structures and utilities for
// noticegen. It defines the allow-list and ignore-list settings, export
// format flags, output location, and the YAML config-file loader.
package config
