// Package script loads and runs pack scripts: a buffer capacity and a list
// of writes, described in TOML or YAML.
package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/keisku/bitpack"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Script describes one pack run.
type Script struct {
	Capacity string `toml:"capacity" yaml:"capacity"`
	// Offset is where the packed bytes land in the output. Defaults to zero.
	Offset string `toml:"offset" yaml:"offset"`
	// OutputSize defaults to Offset plus the packed bytes.
	OutputSize string  `toml:"output_size" yaml:"output_size"`
	Writes     []Write `toml:"writes" yaml:"writes"`
}

// Write is either a bit string or a value with a length.
type Write struct {
	Bits   string  `toml:"bits" yaml:"bits"`
	Value  *uint32 `toml:"value" yaml:"value"`
	Length string  `toml:"length" yaml:"length"`
}

var errNoCapacity = errors.New("capacity is required")

// Load reads a script from path. The format is picked by file extension.
func Load(path string) (Script, error) {
	var (
		s   Script
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		s, err = loadTOML(path)
	case ".yaml", ".yml":
		s, err = loadYAML(path)
	default:
		return Script{}, fmt.Errorf("load script %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return Script{}, fmt.Errorf("load script %s: %w", path, err)
	}
	if strings.TrimSpace(s.Capacity) == "" {
		return Script{}, fmt.Errorf("load script %s: %w", path, errNoCapacity)
	}
	return s, nil
}

func loadTOML(path string) (Script, error) {
	var raw Script
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Script{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Script{}, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	if !meta.IsDefined("capacity") {
		return Script{}, errNoCapacity
	}
	return raw, nil
}

func loadYAML(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return Script{}, err
	}
	defer f.Close()

	var raw Script
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return Script{}, err
	}
	return raw, nil
}

// Run packs every write of s and returns the output bytes.
func Run(s Script, logger zerolog.Logger) ([]byte, error) {
	buf, err := bitpack.New(strings.TrimSpace(s.Capacity), bitpack.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer: %w", err)
	}

	for i, w := range s.Writes {
		v, err := w.value()
		if err != nil {
			return nil, fmt.Errorf("write %d: %w", i, err)
		}
		if err := buf.Pack(v); err != nil {
			return nil, fmt.Errorf("write %d: %w", i, err)
		}
	}

	offset := bitpack.Bits(0)
	if strings.TrimSpace(s.Offset) != "" {
		if offset, err = bitpack.DataLength(s.Offset); err != nil {
			return nil, fmt.Errorf("parse offset: %w", err)
		}
	}

	size := offset.Bits()/8 + len(buf.Bytes())
	if strings.TrimSpace(s.OutputSize) != "" {
		l, err := bitpack.DataLength(s.OutputSize)
		if err != nil {
			return nil, fmt.Errorf("parse output_size: %w", err)
		}
		if l.Bits() < 0 || l.Bits()%8 != 0 {
			return nil, fmt.Errorf("output_size must be a non-negative number of octets, got %s", l)
		}
		size = l.Bits() / 8
	}
	if size < 0 {
		size = 0
	}

	out := make([]byte, size)
	if err := buf.CopyAt(out, offset); err != nil {
		return nil, fmt.Errorf("failed to copy packed bits: %w", err)
	}
	logger.Info().Int("bits", buf.Len()).Int("bytes", len(out)).Msg("script packed")
	return out, nil
}

func (w Write) value() (bitpack.Value, error) {
	switch {
	case w.Bits != "" && w.Value != nil:
		return nil, errors.New("bits and value are mutually exclusive")
	case w.Value != nil:
		var length interface{}
		if strings.TrimSpace(w.Length) != "" {
			length = w.Length
		}
		return bitpack.Numeric{Value: *w.Value, Length: length}, nil
	default:
		return bitpack.BitString(w.Bits), nil
	}
}
