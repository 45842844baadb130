package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/programme-lv/batchjudge/api"
)

// WriteReport encodes rep as zstd compressed JSON.
func WriteReport(w io.Writer, rep api.RunReport) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(rep); err != nil {
		enc.Close()
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

func ReadReport(r io.Reader) (api.RunReport, error) {
	var rep api.RunReport
	dec, err := zstd.NewReader(r)
	if err != nil {
		return rep, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()
	if err := json.NewDecoder(dec).Decode(&rep); err != nil {
		return rep, fmt.Errorf("failed to decode report: %w", err)
	}
	return rep, nil
}

// Save writes rep to path atomically.
func Save(path string, rep api.RunReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := WriteReport(tmp, rep); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func Load(path string) (api.RunReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return api.RunReport{}, err
	}
	defer f.Close()
	return ReadReport(f)
}
