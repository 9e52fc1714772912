package keymap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chtengine/cht/internal/config/layer"
	"github.com/chtengine/cht/internal/config/loader"
	"github.com/chtengine/cht/internal/keys"
	"github.com/chtengine/cht/internal/magic"
)

const builtinLayers = `
[[layer]]
name = "base"

[[layer.binding]]
position = 0

[layer.binding.binding]
behavior = "kc"
param1 = 4
`

const boardHoldTaps = `
[[holdtap]]
position = 10
tapping_term_ms = 200
tap_bindings = [{behavior = "kc", param1 = 4}]
hold_bindings = [{behavior = "mod", param1 = 1}]
`

const userMagic = `
[[magic]]
layer = "base"
keycode = 44
kind = "macro"
macro_id = "the"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile %s: %v", name, err)
	}
	return path
}

func TestLoadMerged(t *testing.T) {
	dir := t.TempDir()
	sources := []Source{
		{Path: writeFile(t, dir, "builtin.toml", builtinLayers), Priority: layer.PriorityBuiltin, Name: layer.SourceBuiltin},
		{Path: writeFile(t, dir, "board.toml", boardHoldTaps), Priority: layer.PriorityWorkspace, Name: layer.SourceWorkspace},
		{Path: writeFile(t, dir, "user.toml", userMagic), Priority: layer.PriorityUserGlobal, Name: layer.SourceUserGlobal},
	}

	km, table, err := LoadMerged(loader.DefaultFS(), sources)
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}

	if len(km.Layers) != 1 || km.Layers[0].Name != "base" {
		t.Fatalf("want a single base layer from the builtin source, got %+v", km.Layers)
	}

	if _, ok := km.HoldTap(10); !ok {
		t.Fatalf("want the board file's hold-tap config at position 10")
	}

	alt := table.Lookup("base", keys.Keycode(44))
	if alt.Kind != magic.AlternateMacro || alt.MacroID != "the" {
		t.Fatalf("want the user file's macro alternate, got %+v", alt)
	}
}

func TestLoadMergedMissingSource(t *testing.T) {
	dir := t.TempDir()
	sources := []Source{
		{Path: writeFile(t, dir, "builtin.toml", builtinLayers), Priority: layer.PriorityBuiltin, Name: layer.SourceBuiltin},
		{Path: filepath.Join(dir, "missing.toml"), Priority: layer.PriorityWorkspace, Name: layer.SourceWorkspace},
	}

	if _, _, err := LoadMerged(loader.DefaultFS(), sources); err == nil {
		t.Fatal("want an error when a source file is missing")
	}
}
