// Package settingsfile implements host.SettingsStore on top of the host's
// global settings JSON file. Plugin sections live under "plugins.<name>".
package settingsfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/cosmoscout/csp-minimap/pkg/event"
	"github.com/cosmoscout/csp-minimap/pkg/host"
)

const pluginsKey = "plugins"

// File is the in-memory copy of a settings file.
type File struct {
	path string
	doc  []byte
	log  *slog.Logger

	onLoad event.Signal[struct{}]
	onSave event.Signal[struct{}]
}

var _ host.SettingsStore = (*File)(nil)

// Open reads the settings file at path. A missing file yields an empty
// document that is created on the first Save. OnLoad is not emitted.
func Open(path string, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f := &File{
		path: path,
		log:  logger.With("component", "settingsfile", "path", path),
	}
	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	f.doc = doc
	return f, nil
}

func (f *File) read() ([]byte, error) {
	doc, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.log.Info("Settings file missing, starting empty")
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("reading settings %s: invalid JSON", f.path)
	}
	return doc, nil
}

func (f *File) OnLoad() *event.Signal[struct{}] { return &f.onLoad }
func (f *File) OnSave() *event.Signal[struct{}] { return &f.onSave }

// Load re-reads the file and notifies OnLoad handlers. A handler error is
// returned; the document stays loaded regardless.
func (f *File) Load() error {
	doc, err := f.read()
	if err != nil {
		return err
	}
	f.doc = doc

	if err := f.onLoad.Emit(struct{}{}); err != nil {
		f.log.Error("Applying settings failed", "error", err)
		return fmt.Errorf("applying settings: %w", err)
	}
	f.log.Debug("Settings loaded")
	return nil
}

// Save lets OnSave handlers write their sections, then writes the document.
// Nothing is written if a handler fails.
func (f *File) Save() error {
	if err := f.onSave.Emit(struct{}{}); err != nil {
		return fmt.Errorf("collecting settings: %w", err)
	}
	if err := os.WriteFile(f.path, pretty.Pretty(f.doc), 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	f.log.Debug("Settings saved")
	return nil
}

// PluginSettings returns the raw section of a plugin.
func (f *File) PluginSettings(name string) (json.RawMessage, bool) {
	res := gjson.GetBytes(f.doc, pluginPath(name))
	if !res.Exists() {
		return nil, false
	}
	return json.RawMessage(res.Raw), true
}

// SetPluginSettings replaces the section of a plugin. Other keys are kept.
func (f *File) SetPluginSettings(name string, doc json.RawMessage) error {
	if !gjson.ValidBytes(doc) {
		return fmt.Errorf("settings of plugin %q: invalid JSON", name)
	}
	updated, err := sjson.SetRawBytes(f.doc, pluginPath(name), doc)
	if err != nil {
		return fmt.Errorf("settings of plugin %q: %w", name, err)
	}
	f.doc = updated
	return nil
}

// Bytes returns the current document.
func (f *File) Bytes() []byte {
	return f.doc
}

func pluginPath(name string) string {
	return pluginsKey + "." + gjson.Escape(name)
}
