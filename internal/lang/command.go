package lang

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// ErrToolchainNotFound is returned when the compiler or interpreter of a
// language is missing on the host.
var ErrToolchainNotFound = errors.New("toolchain not found")

type templateVars struct {
	src string
	bin string
	dir string
}

func expandCommand(tpl string, vars templateVars) ([]string, error) {
	args, err := shlex.Split(tpl)
	if err != nil {
		return nil, fmt.Errorf("invalid command template %q: %w", tpl, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command template")
	}
	r := strings.NewReplacer("{src}", vars.src, "{bin}", vars.bin, "{dir}", vars.dir)
	for i := range args {
		args[i] = r.Replace(args[i])
	}
	return args, nil
}
