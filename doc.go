// Package savefmt saves and restores the formatting state of text streams.
//
// A [Format] is a stream's complete formatting configuration, covering
// radix, field width, fill character, alignment, letter case, float
// precision and notation, treated as one opaque, copyable value. [Stream]
// (output) and [Scanner] (input) carry a Format and apply it to every
// value they write or read. A [Guard] captures a stream's Format and puts
// it back later, so code can reconfigure a shared stream freely without
// leaking the changes to its caller.
//
// # Scope Guards
//
// The defining use is bracketing a function body:
//
//	func reportHex(s *savefmt.Stream, n uint64) {
//		defer savefmt.Capture(s).Restore()
//		s.Base(savefmt.Hex).Upper(true).Fill('0').Width(4)
//		s.Uint(n).Newline()
//	}
//
// [Capture] snapshots the configuration on the way in; the deferred
// Restore puts it back on every exit path, early returns and panics
// included. The caller's view of s is untouched.
//
// # Expression Scopes
//
// [Scoped] brackets a single chain instead of a whole function. The
// capture happens before the function literal runs and the restore fires
// when it returns:
//
//	savefmt.Scoped(s, func(s *savefmt.Stream) {
//		s.Base(savefmt.Hex).Upper(true).Fill('0').Width(4).Int(200)
//	}).Int(200)
//
// The trailing Int sees the stream exactly as it was before the block.
// [Stream.Saving] is the third form, capturing into a caller-owned guard
// mid-chain:
//
//	var g savefmt.Guard
//	defer g.Restore()
//	s.Saving(&g).Base(savefmt.Hex).Int(200)
//
// # Moving Guards
//
// A [Guard] is a transfer-only value: copying one is flagged by go vet,
// and [Guard.MoveTo] hands the binding and snapshot to another guard so
// exactly one holder remains responsible for the restore. [Guard.Release]
// disarms a guard, and [Guard.Capture] rebinds one, restoring the old
// target first. The zero Guard is valid and bound to nothing.
//
// # Streams and Scanners
//
// [Stream] writers chain and share one sticky error, checked once at the
// end with [Stream.Err]. [Scanner] reads are shaped by the same Format
// fields, so a guard captured on a Scanner works identically; one guard
// may even rebind from a Stream to a Scanner, since both satisfy
// [Target].
//
// # Profiles
//
// Formats can be spelled as directive strings ("hex,upper,fill=0,width=4",
// see [ParseSpec]) or loaded as named YAML profiles with [LoadProfiles]
// and picked out with [Profiles.Resolve].
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidSpec] — malformed directive string
//   - [ErrInvalidProfile] — malformed profile document
//   - [ErrUnknownProfile] — profile name not in the set
//   - [ErrSyntax] — scanner token that will not parse
package savefmt
