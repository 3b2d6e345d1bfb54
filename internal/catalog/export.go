package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// document rebuilds the on-disk shape of the catalog.
func (c *Catalog) document() file {
	f := file{
		Version:   c.version,
		Guideline: c.guideline,
		Fallback:  c.fallback,
		Gates:     c.Gates(),
		Tiers:     c.Tiers(),
		Sections:  c.Sections(),
	}
	for _, t := range c.topics {
		for _, r := range c.rules[t.ID] {
			r.Report = ""
			f.Rules = append(f.Rules, r)
		}
	}
	return f
}

// Export writes the catalog in the given format. The YAML output can be
// loaded again with Parse.
func (c *Catalog) Export(w io.Writer, format string) error {
	doc := c.document()
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode catalog YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode catalog JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
