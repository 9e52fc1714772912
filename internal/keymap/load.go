package keymap

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/chtengine/cht/internal/config"
	"github.com/chtengine/cht/internal/config/loader"
	"github.com/chtengine/cht/internal/holdtap"
	"github.com/chtengine/cht/internal/keys"
	"github.com/chtengine/cht/internal/magic"
)

// fileBinding is the TOML shape of a keys.Binding.
type fileBinding struct {
	Behavior string `toml:"behavior"`
	Param1   int32  `toml:"param1"`
	Param2   int32  `toml:"param2"`
}

func (b fileBinding) toBinding() keys.Binding {
	return keys.Binding{Behavior: b.Behavior, Param1: b.Param1, Param2: b.Param2}
}

type fileLayer struct {
	Name     string `toml:"name"`
	Bindings []struct {
		Position int32       `toml:"position"`
		Binding  fileBinding `toml:"binding"`
	} `toml:"binding"`
}

type fileHoldTap struct {
	Position                int32         `toml:"position"`
	TappingTermMS           int64         `toml:"tapping_term_ms"`
	QuickTapMS              int64         `toml:"quick_tap_ms"`
	RequirePriorIdleMS      int64         `toml:"require_prior_idle_ms"`
	Flavor                  string        `toml:"flavor"`
	AfterFlavor             string        `toml:"after_flavor"`
	HoldWhileUndecided      bool          `toml:"hold_while_undecided"`
	HoldWhileUndecidedLinger bool         `toml:"hold_while_undecided_linger"`
	RetroTap                bool          `toml:"retro_tap"`
	HoldTriggerOnRelease    bool          `toml:"hold_trigger_on_release"`
	HoldTriggerKeyPositions []int32       `toml:"hold_trigger_key_positions"`
	TapBindings             []fileBinding `toml:"tap_bindings"`
	HoldBindings            []fileBinding `toml:"hold_bindings"`
	PriorKeycodes           []uint32      `toml:"prior_keycodes"`
	PriorTimeoutMS          int64         `toml:"prior_timeout_ms"`
}

type fileMagicEntry struct {
	Layer   string `toml:"layer"`
	Keycode uint32 `toml:"keycode"`
	Kind    string `toml:"kind"` // "keycode" | "macro" | "repeat"
	Alt     uint32 `toml:"alt"`
	MacroID string `toml:"macro_id"`
}

type fileDocument struct {
	Layers   []fileLayer       `toml:"layer"`
	HoldTaps []fileHoldTap     `toml:"holdtap"`
	Magic    []fileMagicEntry  `toml:"magic"`
}

func parseFlavor(name string) (holdtap.Flavor, error) {
	switch name {
	case "", "balanced":
		return holdtap.FlavorBalanced, nil
	case "tap-preferred":
		return holdtap.FlavorTapPreferred, nil
	case "hold-preferred":
		return holdtap.FlavorHoldPreferred, nil
	default:
		return 0, fmt.Errorf("keymap: unknown flavor %q", name)
	}
}

func toPositions(in []int32) []keys.Position {
	out := make([]keys.Position, len(in))
	for i, p := range in {
		out[i] = keys.Position(p)
	}
	return out
}

func toBindings(in []fileBinding) []keys.Binding {
	out := make([]keys.Binding, len(in))
	for i, b := range in {
		out[i] = b.toBinding()
	}
	return out
}

func toKeycodes(in []uint32) []keys.Keycode {
	out := make([]keys.Keycode, len(in))
	for i, k := range in {
		out[i] = keys.Keycode(k)
	}
	return out
}

// Load reads a declarative keymap file (layers, hold-tap configurations,
// and the magic-key alternate table) from path, per spec §6's "Keymap
// table (input)" external interface.
func Load(fs loader.FileSystem, path string) (*Keymap, *magic.Table, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("keymap: %s: %w", path, config.ErrFileNotFound)
		}
		return nil, nil, fmt.Errorf("keymap: reading %s: %w", path, err)
	}

	var doc fileDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, nil, &config.ParseError{Path: path, Message: "decoding keymap TOML", Err: err}
	}

	return fromDocument(doc)
}

// fromDocument builds a Keymap and magic.Table from an already-decoded
// fileDocument, shared by Load and LoadMerged.
func fromDocument(doc fileDocument) (*Keymap, *magic.Table, error) {
	if len(doc.Layers) == 0 {
		return nil, nil, fmt.Errorf("keymap: document defines no layers")
	}

	base := NewLayer(doc.Layers[0].Name)
	for _, b := range doc.Layers[0].Bindings {
		base.Set(keys.Position(b.Position), b.Binding.toBinding())
	}
	km := New(base)

	for _, fl := range doc.Layers[1:] {
		layer := NewLayer(fl.Name)
		for _, b := range fl.Bindings {
			layer.Set(keys.Position(b.Position), b.Binding.toBinding())
		}
		km.AddLayer(layer)
	}

	for _, fht := range doc.HoldTaps {
		normal, err := parseFlavor(fht.Flavor)
		if err != nil {
			return nil, nil, err
		}
		after, err := parseFlavor(fht.AfterFlavor)
		if err != nil {
			return nil, nil, err
		}

		opts := []holdtap.Option{
			holdtap.WithTappingTerm(fht.TappingTermMS),
			holdtap.WithQuickTap(fht.QuickTapMS),
			holdtap.WithRequirePriorIdle(fht.RequirePriorIdleMS),
			holdtap.WithFlavors(normal, after),
		}
		if fht.HoldWhileUndecided {
			opts = append(opts, holdtap.WithHoldWhileUndecided(fht.HoldWhileUndecidedLinger))
		}
		if fht.RetroTap {
			opts = append(opts, holdtap.WithRetroTap())
		}
		if len(fht.HoldTriggerKeyPositions) > 0 {
			opts = append(opts, holdtap.WithHoldTriggerKeyPositions(fht.HoldTriggerOnRelease, toPositions(fht.HoldTriggerKeyPositions)...))
		}
		if len(fht.PriorKeycodes) > 0 {
			opts = append(opts, holdtap.WithPriorKeycodes(fht.PriorTimeoutMS, toKeycodes(fht.PriorKeycodes)...))
		}

		cfg := holdtap.NewConfig(keys.Position(fht.Position), toBindings(fht.TapBindings), toBindings(fht.HoldBindings), opts...)
		km.SetHoldTap(cfg)
	}

	table := magic.NewTable()
	for _, m := range doc.Magic {
		switch m.Kind {
		case "macro":
			table.SetMacro(m.Layer, keys.Keycode(m.Keycode), m.MacroID)
		case "repeat":
			table.Set(m.Layer, keys.Keycode(m.Keycode), magic.Alternate{Kind: magic.AlternateRepeat})
		default:
			table.SetKeycode(m.Layer, keys.Keycode(m.Keycode), keys.Keycode(m.Alt))
		}
	}

	return km, table, nil
}
