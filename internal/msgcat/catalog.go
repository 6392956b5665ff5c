package msgcat

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultFile = "messages.en.yaml"

//go:embed messages.en.yaml
var defaultFiles embed.FS

var ErrMessageNotFound = errors.New("message not found")

// Catalog holds UI strings keyed by dotted paths ("player.label").
// Values are text/template sources; missing template fields are errors.
type Catalog struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

// New loads the embedded messages and then applies *.yaml / *.yml overrides from dir, if given.
func New(overrideDir string) (*Catalog, error) {
	catalog := &Catalog{templates: make(map[string]*template.Template)}

	raw, err := fs.ReadFile(defaultFiles, defaultFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded messages: %w", err)
	}

	if err = catalog.apply(raw); err != nil {
		return nil, fmt.Errorf("failed to load embedded messages: %w", err)
	}

	if strings.TrimSpace(overrideDir) == "" {
		return catalog, nil
	}

	if err = catalog.applyDir(overrideDir); err != nil {
		return nil, err
	}

	return catalog, nil
}

// MustNew is New for the embedded messages only.
func MustNew() *Catalog {
	catalog, err := New("")
	if err != nil {
		panic(err)
	}

	return catalog
}

// Render executes the message for key with data.
func (that *Catalog) Render(key string, data any) (string, error) {
	that.mu.RLock()
	tpl, ok := that.templates[key]
	that.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMessageNotFound, key)
	}

	var out strings.Builder
	if err := tpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", key, err)
	}

	return out.String(), nil
}

// Text renders key and falls back to the key itself, so a broken message never breaks a page.
func (that *Catalog) Text(key string, data any) string {
	text, err := that.Render(key, data)
	if err != nil {
		return key
	}

	return text
}

func (that *Catalog) applyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read messages dir: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !entry.IsDir() && (ext == ".yaml" || ext == ".yml") {
			files = append(files, entry.Name())
		}
	}
	slices.Sort(files)

	for _, name := range files {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		if err = that.apply(raw); err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}

	return nil
}

func (that *Catalog) apply(raw []byte) error {
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return err
	}

	flat := make(map[string]string)
	if err := flatten(tree, "", flat); err != nil {
		return err
	}

	parsed := make(map[string]*template.Template, len(flat))
	for key, text := range flat {
		tpl, err := template.New(key).Option("missingkey=error").Parse(text)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", key, err)
		}
		parsed[key] = tpl
	}

	that.mu.Lock()
	for key, tpl := range parsed {
		that.templates[key] = tpl
	}
	that.mu.Unlock()

	return nil
}

func flatten(node any, prefix string, out map[string]string) error {
	switch value := node.(type) {
	case map[string]any:
		for key, child := range value {
			if prefix != "" {
				key = prefix + "." + key
			}
			if err := flatten(child, key, out); err != nil {
				return err
			}
		}
		return nil
	case string:
		if prefix == "" {
			return errors.New("message without a key")
		}
		out[prefix] = value
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported value at %s: %T", prefix, value)
	}
}
