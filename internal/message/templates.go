// Package message holds the canned texts staff send to customers by hand.
//
// The catalog is embedded at build time and parsed once; nothing mutates it afterwards.
package message

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const (
	DepositGuide = "deposit_guide"
	Confirmation = "confirmation"
)

// Placeholder names used by the confirmation template.
const (
	VarAppointmentDate = "appointmentDate"
	VarAppointmentTime = "appointmentTime"
	VarCustomerName    = "customerName"
)

//go:embed templates.yaml
var catalogYAML []byte

type Template struct {
	Title                 string `mapstructure:"title"`
	Content               string `mapstructure:"content"`
	RequiresCustomization bool   `mapstructure:"requires_customization"`
}

type catalogFile struct {
	Templates map[string]Template `mapstructure:"templates"`
}

var (
	loadOnce sync.Once
	catalog  map[string]Template
	loadErr  error
)

func parseCatalog(data []byte) (map[string]Template, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("read template catalog: %w", err)
	}

	var file catalogFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("decode template catalog: %w", err)
	}
	if len(file.Templates) == 0 {
		return nil, fmt.Errorf("template catalog is empty")
	}
	return file.Templates, nil
}

// Load parses the embedded catalog. Safe to call repeatedly; parsing happens once.
func Load() error {
	loadOnce.Do(func() {
		catalog, loadErr = parseCatalog(catalogYAML)
	})
	return loadErr
}

// Get returns a copy of the named template.
func Get(key string) (Template, bool) {
	if err := Load(); err != nil {
		return Template{}, false
	}
	t, ok := catalog[key]
	return t, ok
}

// Keys lists template names in sorted order.
func Keys() []string {
	if err := Load(); err != nil {
		return nil
	}
	keys := make([]string, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Customize fills placeholders of the form {name}. Templates that do not require
// customization come back verbatim. Only the first occurrence of each placeholder is
// replaced, in a single pass, and placeholders without a variable are left as they are.
func Customize(t Template, variables map[string]string) string {
	if !t.RequiresCustomization {
		return t.Content
	}

	keys := make([]string, 0, len(variables))
	for k := range variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	content := t.Content
	for _, k := range keys {
		content = strings.Replace(content, "{"+k+"}", variables[k], 1)
	}
	return content
}
