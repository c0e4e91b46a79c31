// Package config loads gl's per-repository settings.
//
// Values are layered: built-in defaults, then <gitdir>/gl/config.yaml, then
// GL_* environment variables.
package config
