package catalog

// Answer is a recorded answer for a sub-variant or requirement.
// The zero value means the question has not been answered.
type Answer string

const (
	AnswerNone        Answer = ""
	AnswerPresent     Answer = "present"
	AnswerAbsent      Answer = "absent"
	AnswerSatisfied   Answer = "satisfied"
	AnswerUnsatisfied Answer = "unsatisfied"
)

// Label returns the display label used by the guideline forms.
func (a Answer) Label() string {
	switch a {
	case AnswerPresent:
		return "변경 있음"
	case AnswerAbsent:
		return "변경 없음"
	case AnswerSatisfied:
		return "충족"
	case AnswerUnsatisfied:
		return "미충족"
	default:
		return "-"
	}
}

// ForSubVariant reports whether a is a valid sub-variant answer.
func (a Answer) ForSubVariant() bool {
	return a == AnswerPresent || a == AnswerAbsent
}

// ForRequirement reports whether a is a valid requirement answer.
func (a Answer) ForRequirement() bool {
	return a == AnswerSatisfied || a == AnswerUnsatisfied
}

// Gate is a yes/no eligibility question asked before any topic.
type Gate struct {
	ID       string `yaml:"id" json:"id"`
	Question string `yaml:"question" json:"question"`
	Pass     string `yaml:"pass" json:"pass"`
	Fail     string `yaml:"fail" json:"fail"`
}

// Tier is a reporting tier such as AR or Cmaj.
type Tier struct {
	Code   string `yaml:"code" json:"code"`
	Name   string `yaml:"name" json:"name"`
	Report string `yaml:"report" json:"report"`
}

// Section groups topics under one CTD heading (e.g. 3.2.S.2).
type Section struct {
	ID     string  `yaml:"id" json:"id"`
	Group  string  `yaml:"group" json:"group"`
	Title  string  `yaml:"title" json:"title"`
	Topics []Topic `yaml:"topics" json:"topics"`
}

// SubVariant is a structural way a topic's change can manifest.
type SubVariant struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Requirement is a yes/no condition attached to a topic.
type Requirement struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Topic is a single catalogued type of manufacturing change.
type Topic struct {
	ID      string `yaml:"id" json:"id"`
	Number  int    `yaml:"number" json:"number"`
	Title   string `yaml:"title" json:"title"`
	Heading string `yaml:"heading,omitempty" json:"heading,omitempty"`

	// AutoSelect marks topics that are always changed once their
	// section is changed.
	AutoSelect bool `yaml:"auto_select,omitempty" json:"auto_select,omitempty"`

	SubVariants  []SubVariant  `yaml:"sub_variants,omitempty" json:"sub_variants,omitempty"`
	Requirements []Requirement `yaml:"requirements,omitempty" json:"requirements,omitempty"`

	// Forced sub-variants are always present regardless of user input.
	Forced []string `yaml:"forced,omitempty" json:"forced,omitempty"`

	// Linked pairs describe the same structural fact from two angles;
	// writing one must write the same answer to the other.
	Linked [][2]string `yaml:"linked,omitempty" json:"linked,omitempty"`

	section string
}

// Section returns the id of the section the topic belongs to.
func (t Topic) Section() string { return t.section }

// DisplayTitle returns the heading if set, otherwise the title.
func (t Topic) DisplayTitle() string {
	if t.Heading != "" {
		return t.Heading
	}
	return t.Title
}

// HasSubVariant reports whether id is one of the topic's sub-variants.
func (t Topic) HasSubVariant(id string) bool {
	for _, sv := range t.SubVariants {
		if sv.ID == id {
			return true
		}
	}
	return false
}

// HasRequirement reports whether id is one of the topic's requirements.
func (t Topic) HasRequirement(id string) bool {
	for _, r := range t.Requirements {
		if r.ID == id {
			return true
		}
	}
	return false
}

// IsForced reports whether the sub-variant is always present.
func (t Topic) IsForced(id string) bool {
	for _, f := range t.Forced {
		if f == id {
			return true
		}
	}
	return false
}

// Partner returns the sub-variant linked to id, if any.
func (t Topic) Partner(id string) (string, bool) {
	for _, pair := range t.Linked {
		switch id {
		case pair[0]:
			return pair[1], true
		case pair[1]:
			return pair[0], true
		}
	}
	return "", false
}

// Rule is one alternative classification path for a topic.
type Rule struct {
	Topic       string   `yaml:"topic" json:"topic"`
	SubVariant  string   `yaml:"sub_variant,omitempty" json:"sub_variant,omitempty"`
	Satisfied   []string `yaml:"satisfied,omitempty" json:"satisfied,omitempty"`
	Unsatisfied []string `yaml:"unsatisfied,omitempty" json:"unsatisfied,omitempty"`
	Tier        string   `yaml:"tier" json:"tier"`
	Documents   string   `yaml:"documents" json:"documents"`

	// Report is filled from the tier at load time.
	Report string `yaml:"-" json:"report,omitempty"`
}

// Unconditional reports whether all three predicate groups are empty.
func (r Rule) Unconditional() bool {
	return r.SubVariant == "" && len(r.Satisfied) == 0 && len(r.Unsatisfied) == 0
}

// Outcome returns the rule's output.
func (r Rule) Outcome() Outcome {
	return Outcome{Tier: r.Tier, Report: r.Report, Documents: r.Documents}
}

// Outcome is the reporting tier and document text produced by a matching rule.
type Outcome struct {
	Tier      string `json:"tier"`
	Report    string `json:"report"`
	Documents string `json:"documents"`
}
