package veg

import (
	"fmt"
	"sort"
	"time"

	"github.com/usace/veg-processor/hydro"
	"gopkg.in/yaml.v3"
)

// Zone codes currently defined in the classification vocabulary.
const (
	ZoneV          int = 15
	ZoneVSuccessor int = 16
)

type ConditionKind string

const (
	// AnyDepth holds when the comparison is satisfied at least once in the
	// window.
	AnyDepth ConditionKind = "any"
	// InundationFrequency holds when the fraction of window steps satisfying
	// the comparison exceeds the ratio.
	InundationFrequency ConditionKind = "frequency"
)

// WindowSpec is a month span inside the simulated calendar year. Rules are
// written against the growing season and spring windows of whichever year is
// being evaluated, so the span resolves against a reference year at run time.
type WindowSpec struct {
	StartMonth time.Month `yaml:"start_month"`
	EndMonth   time.Month `yaml:"end_month"`
}

func (w WindowSpec) Resolve(year int) hydro.MonthSpan {
	return hydro.MonthSpan{
		StartYear:  year,
		StartMonth: w.StartMonth,
		EndYear:    year,
		EndMonth:   w.EndMonth,
	}
}

type Condition struct {
	Window    WindowSpec    `yaml:"window"`
	Kind      ConditionKind `yaml:"kind"`
	Op        Op            `yaml:"op"`
	Threshold float64       `yaml:"threshold"`
	Ratio     float64       `yaml:"ratio,omitempty"`
}

// Rule is one guarded transition of the classification state machine: cells
// holding the source code move to the destination code when every condition
// mask is satisfied.
type Rule struct {
	Name       string      `yaml:"name"`
	Source     int         `yaml:"source"`
	Dest       int         `yaml:"dest"`
	Conditions []Condition `yaml:"conditions"`
}

type ruleCatalog struct {
	Rules []Rule `yaml:"rules"`
}

// DefaultRules is the built-in transition catalog. Zone V moves to its
// successor when spring depth reaches zero at least once and growing season
// inundation frequency exceeds twenty percent. Transitions for zones IV and
// III are not yet defined.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:   "Zone V",
			Source: ZoneV,
			Dest:   ZoneVSuccessor,
			Conditions: []Condition{
				{
					Window:    WindowSpec{StartMonth: time.March, EndMonth: time.May},
					Kind:      AnyDepth,
					Op:        OpLE,
					Threshold: 0,
				},
				{
					Window:    WindowSpec{StartMonth: time.April, EndMonth: time.September},
					Kind:      InundationFrequency,
					Op:        OpGT,
					Threshold: 0,
					Ratio:     0.2,
				},
			},
		},
	}
}

// LoadRules parses a yaml rule catalog, making additional zone transitions a
// data change rather than a code change.
func LoadRules(data []byte) ([]Rule, error) {
	var catalog ruleCatalog
	err := yaml.Unmarshal(data, &catalog)
	if err != nil {
		return nil, err
	}
	for _, r := range catalog.Rules {
		if err := validateRule(r); err != nil {
			return nil, err
		}
	}
	return catalog.Rules, nil
}

func validateRule(r Rule) error {
	if len(r.Conditions) == 0 {
		return fmt.Errorf("rule %v has no conditions", r.Name)
	}
	if r.Source == r.Dest {
		return fmt.Errorf("rule %v transitions zone %v to itself", r.Name, r.Source)
	}
	for i, c := range r.Conditions {
		if err := c.Op.Valid(); err != nil {
			return fmt.Errorf("rule %v condition %v: %v", r.Name, i, err)
		}
		if c.Window.StartMonth < time.January || c.Window.StartMonth > time.December ||
			c.Window.EndMonth < time.January || c.Window.EndMonth > time.December {
			return fmt.Errorf("rule %v condition %v: window months must be 1-12", r.Name, i)
		}
		switch c.Kind {
		case AnyDepth:
		case InundationFrequency:
			if c.Ratio <= 0 || c.Ratio >= 1 {
				return fmt.Errorf("rule %v condition %v: frequency ratio must be between 0 and 1 exclusive, got %v", r.Name, i, c.Ratio)
			}
		default:
			return fmt.Errorf("rule %v condition %v: unknown condition kind %q", r.Name, i, c.Kind)
		}
	}
	return nil
}

// validateRuleSet orders rules by ascending source code and rejects catalogs
// where one rule's destination is another rule's source, so a cell can
// transition at most once per annual pass.
func validateRuleSet(rules []Rule) ([]Rule, error) {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Source < sorted[j].Source })
	sources := make(map[int]string, len(sorted))
	for _, r := range sorted {
		if err := validateRule(r); err != nil {
			return nil, err
		}
		if prior, ok := sources[r.Source]; ok {
			return nil, fmt.Errorf("rules %v and %v share source zone %v", prior, r.Name, r.Source)
		}
		sources[r.Source] = r.Name
	}
	for _, r := range sorted {
		if other, ok := sources[r.Dest]; ok {
			return nil, fmt.Errorf("rule %v destination zone %v is the source of rule %v; chained transitions within one pass are not supported", r.Name, r.Dest, other)
		}
	}
	return sorted, nil
}
