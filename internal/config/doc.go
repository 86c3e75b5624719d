// Package config loads, normalizes, and validates vtt2ass configuration.
//
// Settings come from defaults, an optional TOML file, and a few environment
// overrides (VTT2ASS_FONT_NAME, VTT2ASS_FONT_SIZE). Commands read the
// transcoder and parser knobs through this package so flag values only
// need to override what the user actually passed.
package config
