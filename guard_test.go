package savefmt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tony-oliver/savefmt"
)

// --- Test types: recording target ---

// recordTarget counts SetFormat calls so restore activity is observable
// without rendering anything.
type recordTarget struct {
	f    savefmt.Format
	sets int
}

func (r *recordTarget) Format() savefmt.Format     { return r.f }
func (r *recordTarget) SetFormat(f savefmt.Format) { r.f = f; r.sets++ }

func newRecordTarget() *recordTarget {
	return &recordTarget{f: savefmt.DefaultFormat()}
}

// hexUpper is the distinctive configuration used to dirty a target.
func hexUpper() savefmt.Format {
	f := savefmt.DefaultFormat()
	f.Base = savefmt.Hex
	f.Upper = true
	f.Fill = '0'
	f.Width = 4
	return f
}

// ============================================================
// Tests
// ============================================================

func TestZeroGuardInactive(t *testing.T) {
	t.Parallel()
	var g savefmt.Guard
	assert.Nil(t, g.Target())
	g.Restore()
	g.Release()
	require.NoError(t, g.Close())
	assert.Nil(t, g.Target())
}

func TestCaptureBindsWithoutMutating(t *testing.T) {
	t.Parallel()
	tgt := newRecordTarget()
	g := savefmt.Capture(tgt)
	assert.Same(t, tgt, g.Target())
	assert.Zero(t, tgt.sets)
	assert.Equal(t, savefmt.DefaultFormat(), tgt.f)
}

func TestRestoreRoundTrip(t *testing.T) {
	t.Parallel()
	tgt := newRecordTarget()
	g := savefmt.Capture(tgt)
	tgt.SetFormat(hexUpper())
	g.Restore()
	assert.Equal(t, savefmt.DefaultFormat(), tgt.f)
}

func TestRestoreIdempotent(t *testing.T) {
	t.Parallel()
	tgt := newRecordTarget()
	g := savefmt.Capture(tgt)
	tgt.SetFormat(hexUpper())
	g.Restore()
	g.Restore()
	assert.Equal(t, savefmt.DefaultFormat(), tgt.f)
	// The binding survives, so the guard keeps working after new churn.
	assert.Same(t, tgt, g.Target())
	tgt.SetFormat(hexUpper())
	g.Restore()
	assert.Equal(t, savefmt.DefaultFormat(), tgt.f)
}

func TestReleaseDisarms(t *testing.T) {
	t.Parallel()
	tgt := newRecordTarget()
	g := savefmt.Capture(tgt)
	tgt.SetFormat(hexUpper())
	g.Release()
	assert.Nil(t, g.Target())
	g.Restore()
	assert.Equal(t, hexUpper(), tgt.f)
	assert.Equal(t, 1, tgt.sets)
}

func TestCloseRestoresAndReleases(t *testing.T) {
	t.Parallel()
	tgt := newRecordTarget()
	g := savefmt.Capture(tgt)
	tgt.SetFormat(hexUpper())
	require.NoError(t, g.Close())
	assert.Equal(t, savefmt.DefaultFormat(), tgt.f)
	assert.Nil(t, g.Target())
	// Second Close is inert.
	sets := tgt.sets
	require.NoError(t, g.Close())
	assert.Equal(t, sets, tgt.sets)
}

func TestDeferredCloseBracketsScope(t *testing.T) {
	t.Parallel()
	tgt := newRecordTarget()
	func() {
		defer savefmt.Capture(tgt).Close()
		tgt.SetFormat(hexUpper())
	}()
	assert.Equal(t, savefmt.DefaultFormat(), tgt.f)
}

func TestCaptureRebindRestoresOldTarget(t *testing.T) {
	t.Parallel()
	t1 := newRecordTarget()
	t2 := newRecordTarget()
	g := savefmt.Capture(t1)
	t1.SetFormat(hexUpper())
	g.Capture(t2)
	assert.Equal(t, savefmt.DefaultFormat(), t1.f)
	assert.Same(t, t2, g.Target())
	t2.SetFormat(hexUpper())
	g.Restore()
	assert.Equal(t, savefmt.DefaultFormat(), t2.f)
	// The old target stays at its restored state throughout.
	assert.Equal(t, savefmt.DefaultFormat(), t1.f)
}

func TestCaptureSameTargetResnapshots(t *testing.T) {
	t.Parallel()
	tgt := newRecordTarget()
	g := savefmt.Capture(tgt)
	tgt.SetFormat(hexUpper())
	// Rebinding to the same target restores first, then snapshots the
	// restored state, so the dirty configuration never becomes the saved
	// one.
	g.Capture(tgt)
	assert.Equal(t, savefmt.DefaultFormat(), tgt.f)
	tgt.SetFormat(hexUpper())
	g.Restore()
	assert.Equal(t, savefmt.DefaultFormat(), tgt.f)
}

func TestCaptureNilReleases(t *testing.T) {
	t.Parallel()
	tgt := newRecordTarget()
	g := savefmt.Capture(tgt)
	tgt.SetFormat(hexUpper())
	g.Capture(nil)
	assert.Equal(t, savefmt.DefaultFormat(), tgt.f)
	assert.Nil(t, g.Target())
}

func TestMoveToTransfers(t *testing.T) {
	t.Parallel()
	tgt := newRecordTarget()
	src := savefmt.Capture(tgt)
	tgt.SetFormat(hexUpper())
	var dst savefmt.Guard
	src.MoveTo(&dst)
	assert.Nil(t, src.Target())
	assert.Same(t, tgt, dst.Target())
	// The move itself restores nothing.
	assert.Equal(t, hexUpper(), tgt.f)
	dst.Restore()
	assert.Equal(t, savefmt.DefaultFormat(), tgt.f)
	// The source is inert now.
	tgt.SetFormat(hexUpper())
	src.Restore()
	assert.Equal(t, hexUpper(), tgt.f)
}

func TestMoveToReplacesDestBinding(t *testing.T) {
	t.Parallel()
	t1 := newRecordTarget()
	t2 := newRecordTarget()
	src := savefmt.Capture(t1)
	dst := savefmt.Capture(t2)
	t2.SetFormat(hexUpper())
	src.MoveTo(dst)
	// t2's capture is dropped without a restore.
	assert.Equal(t, hexUpper(), t2.f)
	assert.Same(t, t1, dst.Target())
	dst.Restore()
	assert.Equal(t, savefmt.DefaultFormat(), t1.f)
	assert.Equal(t, hexUpper(), t2.f)
}

func TestMoveToSelf(t *testing.T) {
	t.Parallel()
	tgt := newRecordTarget()
	g := savefmt.Capture(tgt)
	tgt.SetFormat(hexUpper())
	g.MoveTo(g)
	assert.Same(t, tgt, g.Target())
	g.Restore()
	assert.Equal(t, savefmt.DefaultFormat(), tgt.f)
}

func TestMoveFromInactive(t *testing.T) {
	t.Parallel()
	tgt := newRecordTarget()
	var src savefmt.Guard
	dst := savefmt.Capture(tgt)
	src.MoveTo(dst)
	assert.Nil(t, dst.Target())
	assert.Zero(t, tgt.sets)
}

func TestNestedGuards(t *testing.T) {
	t.Parallel()
	write200 := func(s *savefmt.Stream) {
		defer savefmt.Capture(s).Restore()
		s.Width(4).Int(200).Newline()
	}
	write200hex := func(s *savefmt.Stream) {
		defer savefmt.Capture(s).Restore()
		s.Base(savefmt.Hex).Upper(true).Fill('0')
		write200(s)
	}
	var buf bytes.Buffer
	s := savefmt.NewStream(&buf)
	write200(s)
	write200hex(s)
	write200(s)
	require.NoError(t, s.Err())
	assert.Equal(t, " 200\n00C8\n 200\n", buf.String())
	assert.Equal(t, savefmt.DefaultFormat(), s.Format())
}

func TestScopedRestores(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := savefmt.NewStream(&buf)
	s.Width(4).Int(200).Newline()
	savefmt.Scoped(s, func(s *savefmt.Stream) {
		s.Base(savefmt.Hex).Upper(true).Fill('0').Int(200).Newline()
	})
	s.Int(200).Newline()
	require.NoError(t, s.Err())
	assert.Equal(t, " 200\n00C8\n 200\n", buf.String())
}

func TestScopedReturnsTarget(t *testing.T) {
	t.Parallel()
	s := savefmt.NewStream(&bytes.Buffer{})
	got := savefmt.Scoped(s, func(*savefmt.Stream) {})
	assert.Same(t, s, got)
}

func TestScopedRestoresOnPanic(t *testing.T) {
	t.Parallel()
	tgt := newRecordTarget()
	require.Panics(t, func() {
		savefmt.Scoped(savefmt.Target(tgt), func(savefmt.Target) {
			tgt.SetFormat(hexUpper())
			panic("boom")
		})
	})
	assert.Equal(t, savefmt.DefaultFormat(), tgt.f)
}

func TestSavingMidChain(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := savefmt.NewStream(&buf)
	var g savefmt.Guard
	s.Saving(&g).Base(savefmt.Hex).Upper(true).Fill('0').Width(4).Int(200)
	assert.Equal(t, "00C8", buf.String())
	g.Restore()
	assert.Equal(t, savefmt.DefaultFormat(), s.Format())
	require.NoError(t, s.Err())
}

func TestGuardRebindsAcrossStreamAndScanner(t *testing.T) {
	t.Parallel()
	s := savefmt.NewStream(&bytes.Buffer{})
	g := savefmt.Capture(s)
	s.SetFormat(hexUpper())

	// Rebinding onto a Scanner restores the Stream on the way out.
	sc := savefmt.NewScanner(strings.NewReader("ff 42"))
	g.Capture(sc)
	assert.Equal(t, savefmt.DefaultFormat(), s.Format())
	assert.Same(t, sc, g.Target())

	sc.Base(savefmt.Hex)
	v, err := sc.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(255), v)

	g.Restore()
	v, err = sc.Int()
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestScannerSaving(t *testing.T) {
	t.Parallel()
	sc := savefmt.NewScanner(strings.NewReader("ff"))
	var g savefmt.Guard
	v, err := sc.Saving(&g).Base(savefmt.Hex).Int()
	require.NoError(t, err)
	assert.Equal(t, int64(255), v)
	g.Restore()
	assert.Equal(t, savefmt.Decimal, sc.Format().Base)
}
