// Package log builds the zerolog loggers used by the bcdl binaries.
//
//	logger := log.NewPretty(os.Stderr).Level(settings.Level())
//	logger.Info().Str("url", pageURL).Msg("Resolving page")
//
// NewPacked writes compact JSON lines for non-interactive use.
package log
