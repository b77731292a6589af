package systems

import (
	"encoding/json"
	"fmt"
	"sort"

	cfg "github.com/automoto/doomerang-spectator/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
	"go.uber.org/zap"
)

const bindingsItem = "spectator-bindings"

// SavedBindings is the on-disk key layout, keyed by action name.
type SavedBindings map[string][]ebiten.Key

var gdataManager *gdata.Manager

// InitPersistence opens the gdata store used for key bindings.
func InitPersistence(log *zap.Logger) error {
	m, err := gdata.Open(gdata.Config{
		AppName: "doomerang-spectator",
	})
	if err != nil {
		log.Warn("could not initialize persistence", zap.Error(err))
		return fmt.Errorf("open gdata: %w", err)
	}
	gdataManager = m
	return nil
}

// EncodeBindings serializes an input layout.
func EncodeBindings(in cfg.InputConfig) ([]byte, error) {
	saved := SavedBindings{}
	for action, binding := range in.Bindings {
		if action == cfg.ActionNone || action >= cfg.ActionCount {
			continue
		}
		saved[action.String()] = binding.Keys
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return nil, fmt.Errorf("encode bindings: %w", err)
	}
	return data, nil
}

// DecodeBindings parses saved bindings on top of base. Unknown action names
// are returned so the caller can report them; actions missing from data keep
// their base keys.
func DecodeBindings(data []byte, base cfg.InputConfig) (cfg.InputConfig, []string, error) {
	var saved SavedBindings
	if err := json.Unmarshal(data, &saved); err != nil {
		return base, nil, fmt.Errorf("decode bindings: %w", err)
	}

	out := cfg.InputConfig{Bindings: make(map[cfg.ActionID]cfg.InputBinding, len(base.Bindings))}
	for action, binding := range base.Bindings {
		out.Bindings[action] = binding
	}

	var unknown []string
	for name, keys := range saved {
		action, ok := cfg.ActionByName(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		out.Bindings[action] = cfg.InputBinding{Keys: append([]ebiten.Key(nil), keys...)}
	}
	sort.Strings(unknown)
	return out, unknown, nil
}

// LoadBindings applies stored bindings to cfg.Input. A missing store or item
// leaves the defaults in place.
func LoadBindings(log *zap.Logger) error {
	if gdataManager == nil {
		return nil
	}
	data, err := gdataManager.LoadItem(bindingsItem)
	if err != nil {
		log.Warn("could not load bindings", zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	input, unknown, err := DecodeBindings(data, cfg.Input)
	if err != nil {
		return err
	}
	if len(unknown) > 0 {
		log.Warn("ignoring unknown actions in saved bindings", zap.Strings("actions", unknown))
	}
	cfg.Input = input
	return nil
}

// SaveBindings stores cfg.Input.
func SaveBindings() error {
	if gdataManager == nil {
		return nil
	}
	data, err := EncodeBindings(cfg.Input)
	if err != nil {
		return err
	}
	if err := gdataManager.SaveItem(bindingsItem, data); err != nil {
		return fmt.Errorf("save bindings: %w", err)
	}
	return nil
}
