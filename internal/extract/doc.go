// Package extract turns raw post captions into structured event records.
//
// Extraction is a pure function of the caption and the reference time. A
// caption must first read like an event announcement (vocabulary plus at
// least one supporting signal), then yield a resolvable date that has not
// already passed. Name, time, and location are best-effort: each is taken
// from the first matching pattern in a fixed priority list, with sentinels
// when nothing matches.
package extract
