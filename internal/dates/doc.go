// Package dates resolves free-text date and time expressions against an
// explicit reference time.
//
// Date resolution runs an ordered cascade of pattern rules; the first rule
// that produces a concrete calendar date wins, and later rules are never
// consulted. The rule order is a deliberate tie-break policy: explicit
// numeric dates beat named months, which beat relative keywords, which beat
// bare weekday names. Callers pass the reference "now" explicitly so the
// cascade is deterministic under test.
package dates
