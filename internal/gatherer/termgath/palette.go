package termgath

import (
	"github.com/fatih/color"
	"github.com/programme-lv/batchjudge/api"
)

type palette struct {
	ok, wrong, slow, crash, compile, muted, fail, warn *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		ok:      color.New(color.FgGreen, color.Bold),
		wrong:   color.New(color.FgRed, color.Bold),
		slow:    color.New(color.FgYellow),
		crash:   color.New(color.FgMagenta),
		compile: color.New(color.FgCyan),
		muted:   color.New(color.FgHiBlack),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
	}
	if noColor {
		for _, c := range []*color.Color{p.ok, p.wrong, p.slow, p.crash, p.compile, p.muted, p.fail, p.warn} {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) colorOf(v api.Verdict) *color.Color {
	switch v {
	case api.VerdictAccepted:
		return p.ok
	case api.VerdictWrongAnswer:
		return p.wrong
	case api.VerdictTimeLimitExceeded:
		return p.slow
	case api.VerdictRuntimeError:
		return p.crash
	case api.VerdictCompileError:
		return p.compile
	}
	return p.muted
}

// verdict renders the short verdict padded to a fixed width.
func (p palette) verdict(v api.Verdict) string {
	return p.colorOf(v).Sprintf("%-3s", v.Short())
}
