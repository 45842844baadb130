package lang

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed languages.toml
var builtinSpecs []byte

// Spec describes how to prepare and run programs of one language.
// Command templates may use {src}, {bin} and {dir}; they are split with
// shell quoting rules before the placeholders are substituted.
type Spec struct {
	ID             string   `toml:"id"`
	Name           string   `toml:"name"`
	Extensions     []string `toml:"extensions"`
	SourceFile     string   `toml:"source_file"`
	BinaryFile     string   `toml:"binary_file"`
	CompileCmd     string   `toml:"compile_cmd"`
	RunCmd         string   `toml:"run_cmd"`
	Env            []string `toml:"env"`
	TimeMultiplier float64  `toml:"time_multiplier"`
}

type specFile struct {
	Languages []Spec `toml:"languages"`
}

func (s Spec) Compiles() bool {
	return s.CompileCmd != ""
}

func (s *Spec) normalize() error {
	if s.ID == "" {
		return errors.New("language id is empty")
	}
	if s.RunCmd == "" {
		return fmt.Errorf("language %s: run_cmd is required", s.ID)
	}
	if s.Compiles() && (s.SourceFile == "" || s.BinaryFile == "") {
		return fmt.Errorf("language %s: compiled languages need source_file and binary_file", s.ID)
	}
	if s.TimeMultiplier < 0 {
		return fmt.Errorf("language %s: negative time_multiplier", s.ID)
	}
	if s.TimeMultiplier == 0 {
		s.TimeMultiplier = 1
	}
	if s.Name == "" {
		s.Name = s.ID
	}
	for i, ext := range s.Extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.Extensions[i] = ext
	}
	return nil
}

// ParseSpecs decodes a [[languages]] TOML document.
func ParseSpecs(data []byte) ([]Spec, error) {
	var file specFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse language TOML: %w", err)
	}
	for i := range file.Languages {
		if err := file.Languages[i].normalize(); err != nil {
			return nil, err
		}
	}
	return file.Languages, nil
}

func LoadSpecs(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read language file: %w", err)
	}
	return ParseSpecs(data)
}

// BuiltinSpecs returns the languages shipped with the binary.
func BuiltinSpecs() []Spec {
	specs, err := ParseSpecs(builtinSpecs)
	if err != nil {
		panic(fmt.Sprintf("embedded languages.toml is invalid: %v", err))
	}
	return specs
}
