// SPDX-License-Identifier: AGPL-3.0-or-later

package changelog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/repolens/repolens/internal/commit"
)

//go:embed locales.yaml
var localeData []byte

// catalog maps language code -> category name -> display name.
type catalog map[string]map[string]string

var locales = mustLoadLocales()

func mustLoadLocales() catalog {
	var c catalog
	if err := yaml.Unmarshal(localeData, &c); err != nil {
		panic(fmt.Sprintf("changelog: invalid locale catalog: %v", err))
	}
	return c
}

// DefaultLang is used when no language is configured.
const DefaultLang = "en"

// Languages returns the language codes the catalog supports.
func Languages() []string {
	out := make([]string, 0, len(locales))
	for lang := range locales {
		out = append(out, lang)
	}
	return out
}

// displayName returns the localized section name for a category,
// falling back to the category itself for unknown languages.
func displayName(lang string, cat commit.Category) string {
	names, ok := locales[lang]
	if !ok {
		names = locales[DefaultLang]
	}
	if name, ok := names[string(cat)]; ok {
		return name
	}
	return string(cat)
}
