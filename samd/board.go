package samd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/q0jt/go-samd/samd/config"
	"github.com/q0jt/go-samd/samd/config/chip"
	"gopkg.in/yaml.v3"
)

// Board is one named build configuration: a part plus its feature flags.
type Board struct {
	Name                 string
	Chip                 chip.Chip
	InternalFilesystem   bool
	CalibrateCrystalless bool
	NVMSize              *uint32
	FilesystemSize       *uint32
	ConfigSize           *uint32
}

func (b Board) Profile() (ChipProfile, error) {
	return ProfileForChip(b.Chip)
}

func (b Board) Flags() FeatureFlags {
	return FeatureFlags{
		InternalFilesystem:   b.InternalFilesystem,
		CalibrateCrystalless: b.CalibrateCrystalless,
		NVMSize:              b.NVMSize,
		FilesystemSize:       b.FilesystemSize,
		ConfigSize:           b.ConfigSize,
	}
}

// Resolve resolves the layout of the board.
func (b Board) Resolve() (*LayoutPlan, error) {
	profile, err := b.Profile()
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", b.Name, err)
	}
	plan, err := Resolve(profile, b.Flags())
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", b.Name, err)
	}
	return plan, nil
}

type loadConfig struct {
	logger *slog.Logger
}

// LoadOption configures LoadBoards.
type LoadOption func(*loadConfig)

// WithLogger sets the logger used while loading board files.
func WithLogger(logger *slog.Logger) LoadOption {
	return func(c *loadConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// LoadBoards reads board definitions from a Pkl module (.pkl) or a YAML
// document (.yaml, .yml). Evaluating Pkl requires the pkl binary on PATH.
func LoadBoards(ctx context.Context, path string, opts ...LoadOption) (map[string]Board, error) {
	cfg := loadConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		boards map[string]Board
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pkl":
		boards, err = loadPklBoards(ctx, path)
	case ".yaml", ".yml":
		boards, err = loadYAMLBoards(path)
	default:
		return nil, fmt.Errorf("unsupported board file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load boards from %s: %w", path, err)
	}
	cfg.logger.Debug("loaded board definitions", "path", path, "boards", len(boards))
	return boards, nil
}

func loadPklBoards(ctx context.Context, path string) (map[string]Board, error) {
	conf, err := config.LoadFromPath(ctx, path)
	if err != nil {
		return nil, err
	}
	boards := make(map[string]Board, len(conf.Boards))
	for name, b := range conf.Boards {
		if b == nil {
			continue
		}
		boards[name] = Board{
			Name:                 name,
			Chip:                 b.Chip,
			InternalFilesystem:   b.InternalFilesystem,
			CalibrateCrystalless: b.CalibrateCrystalless,
			NVMSize:              b.NvmSize,
			FilesystemSize:       b.FilesystemSize,
			ConfigSize:           b.ConfigSize,
		}
	}
	return boards, nil
}

type yamlBoardFile struct {
	Boards map[string]yamlBoard `yaml:"boards"`
}

type yamlBoard struct {
	Chip                 string  `yaml:"chip"`
	InternalFilesystem   bool    `yaml:"internalFilesystem"`
	CalibrateCrystalless bool    `yaml:"calibrateCrystalless"`
	NVMSize              *uint32 `yaml:"nvmSize"`
	FilesystemSize       *uint32 `yaml:"filesystemSize"`
	ConfigSize           *uint32 `yaml:"configSize"`
}

func loadYAMLBoards(path string) (map[string]Board, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAMLBoards(b)
}

// ParseYAMLBoards decodes a YAML board document.
func ParseYAMLBoards(b []byte) (map[string]Board, error) {
	var doc yamlBoardFile
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	boards := make(map[string]Board, len(doc.Boards))
	for name, yb := range doc.Boards {
		var c chip.Chip
		if err := c.UnmarshalBinary([]byte(yb.Chip)); err != nil {
			return nil, fmt.Errorf("board %s: %w", name, err)
		}
		boards[name] = Board{
			Name:                 name,
			Chip:                 c,
			InternalFilesystem:   yb.InternalFilesystem,
			CalibrateCrystalless: yb.CalibrateCrystalless,
			NVMSize:              yb.NVMSize,
			FilesystemSize:       yb.FilesystemSize,
			ConfigSize:           yb.ConfigSize,
		}
	}
	return boards, nil
}

func FindBoard(boards map[string]Board, name string) (Board, error) {
	b, ok := boards[name]
	if !ok {
		return Board{}, fmt.Errorf("%w: %q", ErrUnknownBoard, name)
	}
	return b, nil
}

// BoardNames returns the board names in sorted order.
func BoardNames(boards map[string]Board) []string {
	names := make([]string, 0, len(boards))
	for name := range boards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
