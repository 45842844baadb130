// Package fileio finds the input and output file names a C or C++
// solution opens instead of reading stdin and writing stdout.
package fileio

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/programme-lv/batchjudge/api"
)

// Detection holds the file names a program uses. An empty name means the
// standard stream is used for that direction.
type Detection struct {
	Input  string
	Output string
	// NameMacro is the value of `#define NAME "..."` when present.
	NameMacro string
}

// IOConfig turns d into the configuration the test runner understands.
func (d Detection) IOConfig() api.IOConfig {
	if d.Input == "" && d.Output == "" {
		return api.IOConfig{Mode: api.IOStdio}
	}
	return api.IOConfig{Mode: api.IOFile, InputFile: d.Input, OutputFile: d.Output}
}

// Detectable reports whether sources with this file name are scanned.
func Detectable(sourcePath string) bool {
	switch strings.ToLower(filepath.Ext(sourcePath)) {
	case ".c", ".cpp", ".cc", ".cxx":
		return true
	}
	return false
}

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//[^\n]*`)

	nameMacro = regexp.MustCompile(`#define\s+NAME\s+["']([^"']+)["']`)
	anyMacro  = regexp.MustCompile(`#define\s+(\w+)\s+["']([^"']+)["']`)

	freopenStdin  = regexp.MustCompile(`freopen\s*\([^,]+,\s*["']\w+["']\s*,\s*stdin\s*\)`)
	freopenStdout = regexp.MustCompile(`freopen\s*\([^,]+,\s*["']\w+["']\s*,\s*stdout\s*\)`)
	freopenIn     = regexp.MustCompile(`freopen\s*\(\s*["']([^"']+)["'][^;]*?,\s*["']\w+["']\s*,\s*stdin\s*\)`)
	freopenOut    = regexp.MustCompile(`freopen\s*\(\s*["']([^"']+)["'][^;]*?,\s*["']\w+["']\s*,\s*stdout\s*\)`)

	streamIn = []*regexp.Regexp{
		regexp.MustCompile(`ifstream\s+\w+\s*\(\s*["']([^"']+)["']`),
		regexp.MustCompile(`ifstream\s+\w+\s*\{\s*["']([^"']+)["']`),
		regexp.MustCompile(`\bfstream\s+\w+\s*\(\s*["']([^"']+)["']`),
	}
	streamOut = []*regexp.Regexp{
		regexp.MustCompile(`ofstream\s+\w+\s*\(\s*["']([^"']+)["']`),
		regexp.MustCompile(`ofstream\s+\w+\s*\{\s*["']([^"']+)["']`),
	}
	streamOpen = regexp.MustCompile(`\.\s*open\s*\(\s*["']([^"']+)["']`)
	fopenCall  = regexp.MustCompile(`fopen\s*\(\s*["']([^"']+)["'][^;]*?,\s*["']([rw])[^"']*["']`)
)

// Detect scans source for file I/O. Names are looked up in order: freopen
// redirects, C++ file streams, FI/FO style macros, fopen calls. A program
// that opens files under names it builds at run time falls back to
// NAME.INP/NAME.OUT from the NAME macro, or to <problemID>.INP and
// <problemID>.OUT. Commented out code is ignored.
func Detect(source []byte, problemID string) Detection {
	src := lineComment.ReplaceAllString(blockComment.ReplaceAllString(string(source), ""), "")

	var d Detection
	if m := nameMacro.FindStringSubmatch(src); m != nil {
		d.NameMacro = m[1]
	}

	usesIfstream := strings.Contains(src, "ifstream")
	usesOfstream := strings.Contains(src, "ofstream")
	usesFstream := strings.Contains(src, "fstream")
	usesFreopenIn := freopenStdin.MatchString(src)
	usesFreopenOut := freopenStdout.MatchString(src)
	usesFopen := strings.Contains(src, "fopen")

	if usesFreopenIn {
		d.Input = firstGroup(freopenIn, src)
	}
	if usesFreopenOut {
		d.Output = firstGroup(freopenOut, src)
	}

	if d.Input == "" && usesFstream {
		for _, re := range streamIn {
			if d.Input = firstGroup(re, src); d.Input != "" {
				break
			}
		}
		if d.Input == "" {
			d.Input = firstGroup(streamOpen, src)
		}
	}
	if d.Output == "" && (usesOfstream || usesFstream) {
		for _, re := range streamOut {
			if d.Output = firstGroup(re, src); d.Output != "" {
				break
			}
		}
	}

	if d.Input == "" || d.Output == "" {
		for _, m := range anyMacro.FindAllStringSubmatch(src, -1) {
			switch strings.ToLower(m[1]) {
			case "fi", "in", "input", "inputfile":
				if d.Input == "" {
					d.Input = m[2]
				}
			case "fo", "out", "output", "outputfile":
				if d.Output == "" {
					d.Output = m[2]
				}
			}
		}
	}

	if (d.Input == "" || d.Output == "") && usesFopen {
		for _, m := range fopenCall.FindAllStringSubmatch(src, -1) {
			switch {
			case m[2] == "r" && d.Input == "":
				d.Input = m[1]
			case m[2] == "w" && d.Output == "":
				d.Output = m[1]
			}
		}
	}

	d.Input = localName(d.Input)
	d.Output = localName(d.Output)

	base := d.NameMacro
	if base == "" {
		base = problemID
	}
	if d.Input == "" && (usesIfstream || usesFreopenIn || usesFopen) {
		d.Input = defaultName(base, ".INP", "input.txt")
	}
	if d.Output == "" && (usesOfstream || usesFreopenOut || usesFopen) {
		d.Output = defaultName(base, ".OUT", "output.txt")
	}
	return d
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// localName drops names that would escape the test directory.
func localName(name string) string {
	if name == "" || !filepath.IsLocal(name) {
		return ""
	}
	return name
}

func defaultName(base, ext, fallback string) string {
	if base == "" {
		return fallback
	}
	return base + ext
}
