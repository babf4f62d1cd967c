package tcpreset

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	yaml "gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultFiles embed.FS

// TimeControl is a named clock configuration a caller can reference instead of
// spelling out base/increment/moves-to-go per request.
type TimeControl struct {
	Name      string
	Base      time.Duration
	Increment time.Duration
	MovesToGo int
}

type presetFile struct {
	Presets map[string]struct {
		BaseMs      int64 `yaml:"base_ms"`
		IncrementMs int64 `yaml:"increment_ms"`
		MovesToGo   int   `yaml:"moves_to_go"`
	} `yaml:"presets"`
}

var (
	registryMu sync.RWMutex
	registry   map[string]TimeControl
)

func init() {
	raw, err := fs.ReadFile(defaultFiles, "presets.yaml")
	if err != nil {
		panic(fmt.Sprintf("tcpreset: read embedded presets: %v", err))
	}
	m, err := parse(raw)
	if err != nil {
		panic(fmt.Sprintf("tcpreset: embedded presets: %v", err))
	}
	registry = m
}

func parse(b []byte) (map[string]TimeControl, error) {
	var pf presetFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return nil, err
	}
	out := make(map[string]TimeControl, len(pf.Presets))
	for name, p := range pf.Presets {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if p.BaseMs <= 0 {
			return nil, fmt.Errorf("preset %s: base_ms must be positive", name)
		}
		if p.IncrementMs < 0 || p.MovesToGo < 0 {
			return nil, fmt.Errorf("preset %s: negative increment or moves_to_go", name)
		}
		out[key] = TimeControl{
			Name:      key,
			Base:      time.Duration(p.BaseMs) * time.Millisecond,
			Increment: time.Duration(p.IncrementMs) * time.Millisecond,
			MovesToGo: p.MovesToGo,
		}
	}
	return out, nil
}

// Get returns the named time control.
func Get(name string) (TimeControl, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	registryMu.RLock()
	defer registryMu.RUnlock()
	tc, ok := registry[key]
	if !ok {
		return TimeControl{}, fmt.Errorf("unknown time control preset %q", name)
	}
	return tc, nil
}

// Names lists the registered presets in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadFile merges presets from a YAML file over the embedded defaults.
// Existing names are overridden, new names added.
func LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read preset file: %w", err)
	}
	m, err := parse(b)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	registryMu.Lock()
	for k, v := range m {
		registry[k] = v
	}
	registryMu.Unlock()
	return nil
}
