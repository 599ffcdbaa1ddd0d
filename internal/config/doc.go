// Package config provides configuration management for bcdl.
//
// This package handles:
//   - Loading and saving settings from YAML files
//   - Default configuration values
//   - BCDL_* environment variable overrides
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Saves to the working directory
//	// Embeds cover art as fetched
//	// Logs at info level
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // A missing file is not an error; a malformed one is
//	}
//	config.ApplyEnv(settings)
//
// # Example File
//
//	output_dir: /music
//	user_agent: bcdl
//	request_timeout: 60s
//	sanitize_file_names: false
//	cover_art_max_size: 0
//	convert_cover_art_to_jpg: false
//	log_level: info
package config
