package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tony-oliver/savefmt"
)

var (
	renderSpec     string
	renderProfiles string
	renderProfile  string
	renderGuarded  bool
)

func init() {
	renderCmd.Flags().StringVar(&renderSpec, "spec", "", "format directives, e.g. hex,upper,fill=0,width=4")
	renderCmd.Flags().StringVar(&renderProfiles, "profiles", "", "YAML file of named formats")
	renderCmd.Flags().StringVar(&renderProfile, "profile", "", "profile name to start from")
	renderCmd.Flags().BoolVar(&renderGuarded, "guarded", true, "restore the stream configuration afterward")
}

var renderCmd = &cobra.Command{
	Use:   "render [values...]",
	Short: "Format values through a directive spec or profile",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := resolveRenderFormat()
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		out := savefmt.NewStream(cmd.OutOrStdout())
		g := savefmt.Capture(out)
		out.SetFormat(f)
		for _, arg := range args {
			writeValue(out, arg)
		}
		if renderGuarded {
			g.Restore()
			fmt.Fprintf(cmd.ErrOrStderr(), "stream restored to spec %q\n", out.Format().Spec())
		} else {
			g.Release()
		}
		return out.Err()
	},
}

// resolveRenderFormat starts from the named profile when one is given and
// layers the --spec directives on top.
func resolveRenderFormat() (savefmt.Format, error) {
	f := savefmt.DefaultFormat()
	if renderProfile != "" {
		if renderProfiles == "" {
			return savefmt.Format{}, errors.New("--profile needs --profiles")
		}
		file, err := os.Open(renderProfiles)
		if err != nil {
			return savefmt.Format{}, err
		}
		defer file.Close()
		ps, err := savefmt.LoadProfiles(file)
		if err != nil {
			return savefmt.Format{}, err
		}
		f, err = ps.Resolve(renderProfile)
		if err != nil {
			if len(ps) > 0 {
				return savefmt.Format{}, fmt.Errorf("%w (have: %s)", err, strings.Join(ps.Names(), ", "))
			}
			return savefmt.Format{}, err
		}
	}
	return f.Apply(renderSpec)
}

// writeValue renders arg as the narrowest numeric kind it parses as, or as
// plain text. Argument syntax follows Go literals, so 0x10 is sixteen no
// matter what base the output uses.
func writeValue(s *savefmt.Stream, arg string) {
	if v, err := strconv.ParseInt(arg, 0, 64); err == nil {
		s.Int(v).Newline()
		return
	}
	if v, err := strconv.ParseUint(arg, 0, 64); err == nil {
		s.Uint(v).Newline()
		return
	}
	if v, err := strconv.ParseFloat(arg, 64); err == nil {
		s.Float(v).Newline()
		return
	}
	if b, err := strconv.ParseBool(arg); err == nil {
		s.Bool(b).Newline()
		return
	}
	s.Text(arg).Newline()
}
