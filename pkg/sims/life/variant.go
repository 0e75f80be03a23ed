package life

import (
	"slices"
	"strings"
	"sync"
)

// Names of the built-in variants.
const (
	StandardName = "standard"
	ExtendedName = "extended"
)

// Variant pairs a neighborhood with a rule set.
type Variant struct {
	Name     string
	Topology Topology
	Rules    RuleSet
}

// Standard is Conway's B3/S23 on the Moore neighborhood.
func Standard() Variant {
	return Variant{
		Name:     StandardName,
		Topology: Topology{Range: 1},
		Rules:    RuleSet{MinSurvive: 2, MaxSurvive: 3, Birth: []int{3}},
	}
}

// Extended is the range-2 ring-weighted variant: inner ring counts 1, outer ring 0.3.
func Extended() Variant {
	return Variant{
		Name:     ExtendedName,
		Topology: Topology{Range: 2, Weighted: true},
		Rules:    RuleSet{MinSurvive: 4, MaxSurvive: 8, Birth: []int{5, 6, 7}},
	}
}

// Validate checks the rule set against the largest count the topology allows.
func (v Variant) Validate() error {
	return v.Rules.Validate(MaxNeighbors(v.Topology))
}

var (
	variantsMu sync.RWMutex
	variants   = map[string]Variant{}
	aliases    = map[string]string{
		"classic": StandardName,
		"conway":  StandardName,
		"3d":      ExtendedName,
	}
)

func init() {
	RegisterVariant(Standard())
	RegisterVariant(Extended())
}

// RegisterVariant adds or replaces a named variant. Empty names are ignored.
func RegisterVariant(v Variant) {
	key := normalize(v.Name)
	if key == "" {
		return
	}
	v.Name = key
	v.Rules = v.Rules.Clone()
	variantsMu.Lock()
	variants[key] = v
	variantsMu.Unlock()
}

// LookupVariant returns the named variant, or Standard when the name is unknown.
func LookupVariant(name string) Variant {
	v, ok := FindVariant(name)
	if !ok {
		return Standard()
	}
	return v
}

// FindVariant is LookupVariant without the fallback.
func FindVariant(name string) (Variant, bool) {
	key := normalize(name)
	variantsMu.RLock()
	defer variantsMu.RUnlock()
	if target, ok := aliases[key]; ok {
		if _, registered := variants[key]; !registered {
			key = target
		}
	}
	v, ok := variants[key]
	if !ok {
		return Variant{}, false
	}
	v.Rules = v.Rules.Clone()
	return v, true
}

// VariantNames lists registered variants in sorted order.
func VariantNames() []string {
	variantsMu.RLock()
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	variantsMu.RUnlock()
	slices.Sort(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
