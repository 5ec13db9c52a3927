package measure

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/intl/pkg/locale"
)

//go:embed units.yaml
var unitsYAML []byte

// forms are the display patterns of one unit in one language.
type forms struct {
	Wide   map[string]string `yaml:"wide"`
	Short  string            `yaml:"short"`
	Narrow string            `yaml:"narrow"`
}

type catalog struct {
	Types map[string][]string         `yaml:"types"`
	Names map[string]map[string]forms `yaml:"names"`

	typeOf map[string]string
}

var loadCatalog = sync.OnceValues(func() (*catalog, error) {
	c := &catalog{}
	if err := yaml.Unmarshal(unitsYAML, c); err != nil {
		return nil, fmt.Errorf("measure: decoding units.yaml: %w", err)
	}
	c.typeOf = make(map[string]string)
	for typ, subtypes := range c.Types {
		for _, s := range subtypes {
			c.typeOf[s] = typ
		}
	}
	return c, nil
})

func (c *catalog) types() []string {
	out := make([]string, 0, len(c.Types))
	for typ := range c.Types {
		out = append(out, typ)
	}
	slices.Sort(out)
	return out
}

// pattern returns the display pattern of subtype for the language of id,
// falling back to root and finally to the short form.
func (c *catalog) pattern(id, subtype string, width Width, keyword string) string {
	lang, _ := locale.Language(id)
	chain := []string{lang, "root"}
	for _, l := range chain {
		f, ok := c.Names[l][subtype]
		if !ok {
			continue
		}
		switch width {
		case Wide:
			if p := f.Wide[keyword]; p != "" {
				return p
			}
			if p := f.Wide["other"]; p != "" {
				return p
			}
		case Narrow:
			if f.Narrow != "" {
				return f.Narrow
			}
		default:
			if f.Short != "" {
				return f.Short
			}
		}
	}
	if width != Short {
		return c.pattern(id, subtype, Short, keyword)
	}
	return "{0} " + subtype
}

// split returns the text around the "{0}" placeholder.
func split(pattern string) (before, after string) {
	before, after, ok := strings.Cut(pattern, "{0}")
	if !ok {
		return pattern, ""
	}
	return before, after
}
