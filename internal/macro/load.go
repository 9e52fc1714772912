package macro

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/chtengine/cht/internal/config"
	"github.com/chtengine/cht/internal/config/loader"
)

type fileMacro struct {
	ID   string `toml:"id"`
	Body string `toml:"body"`
}

type fileDocument struct {
	Macros []fileMacro `toml:"macro"`
}

// Load reads macro definitions from a declarative TOML file (spec §4.4
// step 3's "macro processor"), the same shape keymap.Load uses for the
// keymap itself:
//
//	[[macro]]
//	id = "the"
//	body = "return 'the'"
func Load(fs loader.FileSystem, path string) (*Register, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("macro: %s: %w", path, config.ErrFileNotFound)
		}
		return nil, fmt.Errorf("macro: reading %s: %w", path, err)
	}

	var doc fileDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &config.ParseError{Path: path, Message: "decoding macro TOML", Err: err}
	}

	reg := NewRegister()
	for _, m := range doc.Macros {
		reg.Add(Definition{ID: m.ID, Body: m.Body})
	}
	return reg, nil
}
