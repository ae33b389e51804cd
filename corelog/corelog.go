// Package corelog is the module's only logging surface. §5 of the
// design keeps the container core single-threaded and synchronous, and
// §7 keeps contract violations as panics, not log lines — so nothing on
// a hot path logs. The exception is the non-fatal out-of-universe-insert
// warning §7 names explicitly, reused by every component whose original
// C counterpart logs-and-continues rather than aborts on an out-of-range
// input: `container/vebset` (inserting outside a vEB set's declared
// universe), `sketch/qdigest` (updating a value outside the digest's
// fixed range), and `sketch/distinct`'s `BJKST` (processing a value
// outside its declared bit-width universe). All three call WarnOutOfUniverse
// directly. The only other log line in this module is cmd/cocadactl's
// warning, through Logger, when it reads no input integers.
package corelog

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-level zerolog.Logger used by every
// WarnOutOfUniverse call site. Replace it (e.g. with a zerolog.Logger
// writing JSON instead of the default console writer) before using this
// module in a service.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger()

// WarnOutOfUniverse logs the §7 "operation outside a component's
// declared universe or range: ignored with a warning" condition.
func WarnOutOfUniverse(component string, value, universe int64) {
	Logger.Warn().
		Str("component", component).
		Int64("value", value).
		Int64("universe", universe).
		Msg("insert outside declared universe ignored")
}
