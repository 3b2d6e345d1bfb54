package catalog

import (
	"slices"
)

// file is the on-disk shape of a catalog document.
type file struct {
	Version   string    `yaml:"version" json:"version"`
	Guideline string    `yaml:"guideline" json:"guideline"`
	Fallback  string    `yaml:"fallback" json:"fallback"`
	Gates     []Gate    `yaml:"gates" json:"gates"`
	Tiers     []Tier    `yaml:"tiers" json:"tiers"`
	Sections  []Section `yaml:"sections" json:"sections"`
	Rules     []Rule    `yaml:"rules" json:"rules"`
}

// Catalog is the immutable registry of topics and their rules.
// It is safe for concurrent use once built.
type Catalog struct {
	version   string
	guideline string
	fallback  string
	gates     []Gate
	tiers     []Tier
	sections  []Section

	topics    []Topic
	byID      map[string]*Topic
	bySection map[string][]Topic
	tierByID  map[string]*Tier
	rules     map[string][]Rule
}

// build validates f and constructs the catalog indices.
func build(f *file) (*Catalog, error) {
	if err := validateFile(f); err != nil {
		return nil, err
	}

	c := &Catalog{
		version:   f.Version,
		guideline: f.Guideline,
		fallback:  f.Fallback,
		gates:     f.Gates,
		tiers:     f.Tiers,
		sections:  f.Sections,
		byID:      make(map[string]*Topic),
		bySection: make(map[string][]Topic, len(f.Sections)),
		tierByID:  make(map[string]*Tier, len(f.Tiers)),
		rules:     make(map[string][]Rule),
	}

	for i := range c.tiers {
		c.tierByID[c.tiers[i].Code] = &c.tiers[i]
	}

	for si := range c.sections {
		s := &c.sections[si]
		for ti := range s.Topics {
			s.Topics[ti].section = s.ID
			c.topics = append(c.topics, s.Topics[ti])
		}
		c.bySection[s.ID] = s.Topics
	}
	for i := range c.topics {
		c.byID[c.topics[i].ID] = &c.topics[i]
	}

	for _, r := range f.Rules {
		r.Report = c.tierByID[r.Tier].Report
		c.rules[r.Topic] = append(c.rules[r.Topic], r)
	}

	return c, nil
}

// Version returns the catalog's semantic version.
func (c *Catalog) Version() string { return c.version }

// Guideline returns the name of the guideline the catalog encodes.
func (c *Catalog) Guideline() string { return c.guideline }

// Fallback returns the message shown when no rule covers the answers.
func (c *Catalog) Fallback() string { return c.fallback }

// Gates returns the eligibility questions in order.
func (c *Catalog) Gates() []Gate { return slices.Clone(c.gates) }

// Tiers returns the declared reporting tiers in order.
func (c *Catalog) Tiers() []Tier { return slices.Clone(c.tiers) }

// Tier returns the tier with the given code.
func (c *Catalog) Tier(code string) (Tier, bool) {
	t, ok := c.tierByID[code]
	if !ok {
		return Tier{}, false
	}
	return *t, true
}

// Sections returns all sections in presentation order.
func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	for i, s := range c.sections {
		out[i] = s.clone()
	}
	return out
}

// Section returns the section with the given id.
func (c *Catalog) Section(id string) (Section, bool) {
	for _, s := range c.sections {
		if s.ID == id {
			return s.clone(), true
		}
	}
	return Section{}, false
}

// Topics returns every topic in presentation order.
func (c *Catalog) Topics() []Topic { return cloneTopics(c.topics) }

// TopicsIn returns the topics of a section in order, or nil for an
// unknown section.
func (c *Catalog) TopicsIn(sectionID string) []Topic {
	return cloneTopics(c.bySection[sectionID])
}

// ByID returns the topic with the given id.
func (c *Catalog) ByID(topicID string) (Topic, error) {
	t, ok := c.byID[topicID]
	if !ok {
		return Topic{}, &UnknownTopicError{ID: topicID}
	}
	return t.clone(), nil
}

// SubVariantsOf returns the topic's sub-variants in catalog order.
func (c *Catalog) SubVariantsOf(topicID string) ([]SubVariant, error) {
	t, err := c.ByID(topicID)
	if err != nil {
		return nil, err
	}
	return t.SubVariants, nil
}

// RequirementsOf returns the topic's requirements in catalog order.
func (c *Catalog) RequirementsOf(topicID string) ([]Requirement, error) {
	t, err := c.ByID(topicID)
	if err != nil {
		return nil, err
	}
	return t.Requirements, nil
}

// RulesFor returns the topic's rules in catalog order. Matching rules
// are reported in this order, so it is never sorted or deduplicated.
func (c *Catalog) RulesFor(topicID string) ([]Rule, error) {
	if _, ok := c.byID[topicID]; !ok {
		return nil, &UnknownTopicError{ID: topicID}
	}
	rules := c.rules[topicID]
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = r.clone()
	}
	return out, nil
}

// RuleCount returns the total number of rules.
func (c *Catalog) RuleCount() int {
	n := 0
	for _, rs := range c.rules {
		n += len(rs)
	}
	return n
}
