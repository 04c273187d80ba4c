package savefmt

// Target is the stream surface a [Guard] binds: anything whose formatting
// configuration can be read out and put back as one opaque [Format] value.
// [Stream] and [Scanner] both implement it, so the same guard type serves
// output and input, and a single guard may rebind between the two.
type Target interface {
	// Format returns the current formatting configuration.
	Format() Format
	// SetFormat replaces the entire formatting configuration.
	SetFormat(Format)
}

// Guard captures a stream's formatting configuration and puts it back
// later: explicitly through [Guard.Restore], or at end of scope through a
// deferred Restore or Close. The zero value is an inactive guard bound to
// nothing.
//
// A guard is a transfer-only value. It must not be copied (go vet's
// copylocks check flags copies); hand it over with [Guard.MoveTo] instead,
// so exactly one live guard is ever responsible for a given capture.
//
// Guards hold a non-owning reference to their target and are not safe for
// concurrent use.
type Guard struct {
	noCopy noCopy

	// target is the stream whose configuration is held; nil when inactive.
	target Target
	// saved carries the snapshot taken at the most recent capture.
	saved Format
}

// Capture returns a new guard bound to t, holding a snapshot of t's
// current formatting configuration. The stream itself is not modified.
//
//	defer savefmt.Capture(s).Restore()
func Capture(t Target) *Guard {
	g := &Guard{}
	g.Capture(t)
	return g
}

// Capture binds g to t and snapshots t's current configuration. A guard
// that was already bound, whether to t itself or to another stream, first
// restores its held snapshot to the old target, exactly as Restore would.
// A nil t restores and releases, leaving g inactive.
func (g *Guard) Capture(t Target) {
	g.Restore()
	g.target = t
	if t != nil {
		g.saved = t.Format()
	}
}

// Restore puts the held snapshot back onto the bound stream. An inactive
// guard ignores the request. The binding and snapshot are kept, so a later
// Restore reapplies the same snapshot.
func (g *Guard) Restore() {
	if g.target != nil {
		g.target.SetFormat(g.saved)
	}
}

// Close restores like [Guard.Restore] and then releases the binding,
// leaving g inactive. It implements [io.Closer] so a guard can ride the
// usual resource plumbing; the error is always nil and a second Close is a
// no-op. Captured and deferred in one line, it brackets a function body:
//
//	defer savefmt.Capture(s).Close()
func (g *Guard) Close() error {
	g.Restore()
	g.target = nil
	return nil
}

// Release unbinds without touching the stream: the held snapshot is
// abandoned and later Restore or Close calls do nothing. Releasing an
// inactive guard is a no-op.
func (g *Guard) Release() {
	g.target = nil
}

// Target reports the bound stream, or nil if the guard is inactive.
func (g *Guard) Target() Target {
	return g.target
}

// MoveTo hands g's binding and snapshot over to dst and leaves g inactive,
// so the responsibility to restore moves with the value. Whatever dst held
// before is dropped without a restore. Moving a guard into itself is a
// no-op. The move never touches either stream.
func (g *Guard) MoveTo(dst *Guard) {
	if dst == g {
		return
	}
	dst.target = g.target
	dst.saved = g.saved
	g.target = nil
}

// Scoped runs fn with t's formatting configuration guarded: the capture
// happens before fn and the restore fires when fn returns, panics
// included. It brackets a single chain the way a deferred Restore brackets
// a whole function:
//
//	savefmt.Scoped(s, func(s *savefmt.Stream) {
//		s.Base(savefmt.Hex).Upper(true).Fill('0').Width(4).Int(200)
//	})
//
// The stream parameter keeps its concrete type, so fn sees the full API.
// Scoped returns t for further use.
func Scoped[T Target](t T, fn func(T)) T {
	g := Capture(t)
	defer g.Restore()
	fn(t)
	return t
}

// noCopy triggers go vet's copylocks check when a Guard is copied by
// value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
