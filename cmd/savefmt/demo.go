package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tony-oliver/savefmt"
)

var demoHeading = color.New(color.FgCyan, color.Bold)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk the guard lifecycle on a live stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		s := savefmt.NewStream(out)
		demoGuardedHelpers(out, s)
		demoScopedBlock(out, s)
		demoLifecycle(out, s)
		demoMoves(out, s)
		return s.Err()
	},
}

func heading(out io.Writer, title string) {
	demoHeading.Fprintf(out, "== %s ==\n", title)
}

// demoGuardedHelpers shows the deferred-restore idiom: each helper guards
// the stream, so the hex helper's churn never leaks into its caller.
func demoGuardedHelpers(out io.Writer, s *savefmt.Stream) {
	heading(out, "guarded helpers")
	write200 := func(s *savefmt.Stream) {
		defer savefmt.Capture(s).Restore()
		s.Width(4).Int(200).Newline()
	}
	write200hex := func(s *savefmt.Stream) {
		defer savefmt.Capture(s).Restore()
		s.Base(savefmt.Hex).Upper(true).Fill('0')
		write200(s)
	}
	write200(s)
	write200hex(s)
	write200(s)
}

// demoScopedBlock brackets a single chain instead of a whole function.
func demoScopedBlock(out io.Writer, s *savefmt.Stream) {
	heading(out, "scoped block")
	s.Int(42).Newline()
	savefmt.Scoped(s, func(s *savefmt.Stream) {
		s.Base(savefmt.Hex).Prefix(true).Int(42).Newline()
	})
	s.Int(42).Newline()
}

// demoLifecycle steps through capture, restore, release and close by hand.
func demoLifecycle(out io.Writer, s *savefmt.Stream) {
	heading(out, "lifecycle")
	report := func(what string) {
		fmt.Fprintf(out, "%-10s ", what+":")
		s.Int(42).Newline()
	}

	g := savefmt.Capture(s)
	report("captured")
	s.Base(savefmt.Hex).Prefix(true)
	report("hexed")
	g.Restore()
	report("restored")
	s.Base(savefmt.Hex).Prefix(true)
	g.Release()
	g.Restore()
	report("released")
	s.SetFormat(savefmt.DefaultFormat())
}

// demoMoves hands a binding from one guard to another, the transfer-only
// analogue of moving the saver value.
func demoMoves(out io.Writer, s *savefmt.Stream) {
	heading(out, "moves")
	bound := func(g *savefmt.Guard) string {
		if g.Target() != nil {
			return "bound"
		}
		return "inactive"
	}

	var a, b savefmt.Guard
	fmt.Fprintf(out, "fresh:      a %s, b %s\n", bound(&a), bound(&b))
	a.Capture(s)
	s.Base(savefmt.Binary)
	fmt.Fprintf(out, "captured:   a %s, b %s\n", bound(&a), bound(&b))
	a.MoveTo(&b)
	fmt.Fprintf(out, "moved:      a %s, b %s\n", bound(&a), bound(&b))
	b.Restore()
	fmt.Fprintf(out, "restored by b: ")
	s.Int(42).Newline()
	b.Release()
}
