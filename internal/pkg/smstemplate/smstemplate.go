package smstemplate

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"unistay/internal/domain"
	"unistay/internal/pkg/sms"
)

const (
	DefaultLocale = "en"

	keyDefault = "default"
	keyTest    = "test"
	ellipsis   = "..."
)

type Templates map[string]string

//go:embed locales
var builtin embed.FS

var (
	locales = make(map[string]Templates)
	mu      sync.RWMutex
)

func init() {
	if err := load(builtin, "locales"); err != nil {
		panic(fmt.Sprintf("smstemplate: builtin templates: %v", err))
	}
}

// LoadTemplates reads <localePath>/<locale>/sms.yaml files, overriding the
// builtin templates key by key.
func LoadTemplates(localePath string) error {
	return load(os.DirFS(localePath), ".")
}

func load(fsys fs.FS, root string) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := filepath.ToSlash(filepath.Join(root, locale, "sms.yaml"))

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			continue
		}

		var config struct {
			SMS Templates `yaml:"SMS"`
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		if locales[locale] == nil {
			locales[locale] = make(Templates)
		}
		for k, v := range config.SMS {
			locales[locale][k] = v
		}
	}

	return nil
}

func lookup(locale, key string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := locales[locale]; ok {
		if val, ok := t[key]; ok {
			return val, true
		}
	}
	if locale != DefaultLocale {
		if t, ok := locales[DefaultLocale]; ok {
			if val, ok := t[key]; ok {
				return val, true
			}
		}
	}
	return "", false
}

// Render composes the SMS body for a notification. The result never exceeds
// sms.MaxLength characters.
func Render(locale string, n *domain.Notification) string {
	tmpl, ok := lookup(locale, string(n.Type))
	if !ok {
		tmpl, ok = lookup(locale, keyDefault)
	}
	if !ok {
		tmpl = "{message}"
	}

	property := ""
	if n.PropertyName != nil && strings.TrimSpace(*n.PropertyName) != "" {
		property = " at " + strings.TrimSpace(*n.PropertyName)
	}

	body := strings.NewReplacer(
		"{property}", property,
		"{message}", strings.TrimSpace(n.Message),
	).Replace(tmpl)

	return Truncate(body, sms.MaxLength)
}

// TestMessage is the body used when an administrator sends a test without text.
func TestMessage(locale string) string {
	if tmpl, ok := lookup(locale, keyTest); ok {
		return Truncate(tmpl, sms.MaxLength)
	}
	return "Test message"
}

// Truncate cuts s to at most limit runes, marking the cut with an ellipsis.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= len(ellipsis) {
		return string(runes[:limit])
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}
