// Package catalog holds the platform registry: every platform the template
// builder can target, with its field set, character limits and hashtag limits.
// The catalog is read-only after initialization. An external platforms.yaml
// file may override the built-in table before first use; if that file is
// missing or unreadable the built-in table is used as-is, initialization
// never fails.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/3cstudio/contentforge/internal/errors"
	"github.com/3cstudio/contentforge/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog is an ordered, immutable registry of platform definitions.
type Catalog struct {
	keys []string
	defs map[string]*models.PlatformDefinition
}

// New returns a catalog containing the built-in platform table.
func New() *Catalog {
	c := &Catalog{defs: make(map[string]*models.PlatformDefinition)}
	for _, def := range builtinPlatforms() {
		c.register(def)
	}
	return c
}

// Load reads platform definitions from a YAML file and returns a catalog
// built from them. A missing or corrupt file falls back to the built-in
// table with a warning; the caller always gets a usable catalog.
func Load(path string) *Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read platform file %s: %v\n", path, err)
		}
		return New()
	}

	c, err := parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring platform file %s: %v\n",
			path, errors.LoadError("platform catalog", err))
		return New()
	}
	return c
}

// parse decodes a YAML mapping of key -> platform definition. A yaml.Node is
// used instead of a plain map so file order becomes registration order.
func parse(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty platform file")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("platform file must be a mapping of key to definition")
	}

	c := &Catalog{defs: make(map[string]*models.PlatformDefinition)}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		var def models.PlatformDefinition
		if err := root.Content[i+1].Decode(&def); err != nil {
			return nil, fmt.Errorf("platform %s: %w", key, err)
		}
		def.Key = key
		normalize(&def)
		c.register(&def)
	}
	if len(c.keys) == 0 {
		return nil, fmt.Errorf("platform file defines no platforms")
	}
	return c, nil
}

// normalize fills in derived parts of a definition loaded from file: when no
// explicit field list is given, the character-limit keys are the form fields.
func normalize(def *models.PlatformDefinition) {
	if len(def.Fields) == 0 {
		for field := range def.CharacterLimits {
			def.Fields = append(def.Fields, field)
		}
		sort.Strings(def.Fields)
	}
}

func (c *Catalog) register(def *models.PlatformDefinition) {
	if _, exists := c.defs[def.Key]; !exists {
		c.keys = append(c.keys, def.Key)
	}
	c.defs[def.Key] = def
}

// Get returns the definition for a platform key.
func (c *Catalog) Get(key string) (*models.PlatformDefinition, error) {
	def, ok := c.defs[key]
	if !ok {
		return nil, errors.UnknownPlatformError(key)
	}
	return def, nil
}

// Has reports whether a platform key is registered.
func (c *Catalog) Has(key string) bool {
	_, ok := c.defs[key]
	return ok
}

// List returns all definitions in registration order.
func (c *Catalog) List() []*models.PlatformDefinition {
	defs := make([]*models.PlatformDefinition, 0, len(c.keys))
	for _, key := range c.keys {
		defs = append(defs, c.defs[key])
	}
	return defs
}

// Keys returns the registered platform keys in registration order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// builtinPlatforms is the fallback table used when no platforms.yaml is
// available. It mirrors the shipped platform configuration.
func builtinPlatforms() []*models.PlatformDefinition {
	return []*models.PlatformDefinition{
		{
			Key:             "instagram",
			Name:            "Instagram",
			CharacterLimits: map[string]int{"caption": 2200, "bio": 150},
			Hashtags:        models.HashtagLimits{Max: 30, Recommended: 11},
			Features:        []string{"stories", "reels", "posts", "igtv"},
			Fields:          []string{"caption", "bio"},
		},
		{
			Key:             "linkedin",
			Name:            "LinkedIn",
			CharacterLimits: map[string]int{"post": 3000, "headline": 120},
			Hashtags:        models.HashtagLimits{Max: 5, Recommended: 3},
			Features:        []string{"articles", "posts", "stories"},
			Fields:          []string{"post", "headline"},
		},
		{
			Key:             "twitter",
			Name:            "Twitter / X",
			CharacterLimits: map[string]int{"post": 280, "bio": 160},
			Hashtags:        models.HashtagLimits{Max: 5, Recommended: 2},
			Features:        []string{"posts", "threads", "spaces"},
			Fields:          []string{"post", "bio"},
		},
		{
			Key:             "youtube",
			Name:            "YouTube",
			CharacterLimits: map[string]int{"title": 100, "description": 5000},
			Hashtags:        models.HashtagLimits{Max: 15, Recommended: 3},
			Features:        []string{"videos", "shorts", "live", "premieres"},
			Fields:          []string{"title", "description"},
		},
		{
			Key:             "tiktok",
			Name:            "TikTok",
			CharacterLimits: map[string]int{"caption": 2200, "bio": 80},
			Hashtags:        models.HashtagLimits{Max: 20, Recommended: 5},
			Features:        []string{"videos", "stories", "live", "duets"},
			Fields:          []string{"caption", "bio"},
		},
	}
}
