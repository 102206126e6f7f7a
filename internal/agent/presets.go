package agent

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/hotelagent/internal/utils"
	"gopkg.in/yaml.v3"
)

// PresetsFileName is looked up in the config dir, and replaces the embedded
// presets when present.
const PresetsFileName = "agents.yaml"

//go:embed agents.yaml
var defaultPresets []byte

// ErrUnknownAgent is returned when no preset has the requested id.
var ErrUnknownAgent = errors.New("unknown agent")

type Preset struct {
	ID            string `yaml:"id"`
	Description   string `yaml:"description"`
	SystemMessage string `yaml:"system_message"`
	// Pipeline turns are answered by the hotel search pipeline.
	Pipeline bool `yaml:"pipeline"`
}

type presetsFile struct {
	Agents []Preset `yaml:"agents"`
}

// Presets in the order they are listed to the user.
type Presets []Preset

func (p Presets) Get(id string) (Preset, error) {
	id = strings.TrimSpace(id)
	for _, preset := range p {
		if preset.ID == id {
			return preset, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: '%v'", ErrUnknownAgent, id)
}

// ParsePresets from yaml. Ids must be unique and non-empty.
func ParsePresets(b []byte) (Presets, error) {
	var f presetsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse agent presets: %w", err)
	}
	if len(f.Agents) == 0 {
		return nil, errors.New("no agent presets defined")
	}
	seen := make(map[string]struct{}, len(f.Agents))
	for i, a := range f.Agents {
		if strings.TrimSpace(a.ID) == "" {
			return nil, fmt.Errorf("agent preset at index %d is missing an id", i)
		}
		if _, ok := seen[a.ID]; ok {
			return nil, fmt.Errorf("duplicate agent preset id: '%v'", a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return Presets(f.Agents), nil
}

// DefaultPresets are the embedded presets.
func DefaultPresets() Presets {
	p, err := ParsePresets(defaultPresets)
	if err != nil {
		panic(fmt.Sprintf("embedded agent presets are broken: %v", err))
	}
	return p
}

// LoadPresets from configDir, falling back to the embedded presets if there is
// no presets file.
func LoadPresets(configDir string) (Presets, error) {
	path := filepath.Join(configDir, PresetsFileName)
	b, err := utils.ReadIfExists(path)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return DefaultPresets(), nil
	}
	p, err := ParsePresets(b)
	if err != nil {
		return nil, fmt.Errorf("failed to load '%v': %w", path, err)
	}
	ancli.Noticef("using agent presets from: '%v'\n", path)
	return p, nil
}
