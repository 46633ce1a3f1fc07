// Package config reads the bibmap.yaml configuration file.
package config
