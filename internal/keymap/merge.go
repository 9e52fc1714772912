package keymap

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/chtengine/cht/internal/config"
	"github.com/chtengine/cht/internal/config/layer"
	"github.com/chtengine/cht/internal/config/loader"
	"github.com/chtengine/cht/internal/magic"
)

// Source names one file to merge into a board's keymap configuration,
// at the given priority (spec §1's "per-board glue files ... treated as
// external data that configures the core").
type Source struct {
	Path     string
	Priority int
	Name     layer.Source
}

// LoadMerged layers multiple keymap TOML files — typically builtin
// defaults, a board file, and a user override — through
// internal/config/layer's priority-merge before decoding the result the
// same way Load does. Sources are applied in ascending Priority order,
// whatever their order in the list: a higher-priority source overrides
// individual keys of lower ones, nested tables are merged key by key, and
// any other value, arrays of tables such as [[layer]] included, is
// replaced whole.
func LoadMerged(fs loader.FileSystem, sources []Source) (*Keymap, *magic.Table, error) {
	mgr := layer.NewManager()

	for _, src := range sources {
		data, err := fs.ReadFile(src.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, nil, fmt.Errorf("keymap: %s: %w", src.Path, config.ErrFileNotFound)
			}
			return nil, nil, fmt.Errorf("keymap: reading %s: %w", src.Path, err)
		}
		var parsed map[string]any
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, nil, &config.ParseError{Path: src.Path, Message: "decoding source TOML", Err: err}
		}
		mgr.AddLayer(layer.NewLayerWithData(src.Path, src.Name, src.Priority, parsed))
	}

	merged := mgr.Merge()
	reencoded, err := toml.Marshal(merged)
	if err != nil {
		return nil, nil, fmt.Errorf("keymap: re-encoding merged config: %w", err)
	}

	var doc fileDocument
	if err := toml.Unmarshal(reencoded, &doc); err != nil {
		return nil, nil, fmt.Errorf("keymap: decoding merged config: %w", err)
	}

	return fromDocument(doc)
}
