// Package options holds the formatting options and their resolution
// order: built-in defaults, then a repo-local config file, then CLI
// flags, each layer expressed as pointer-field overrides.
package options

import (
	"fmt"
	"strings"
)

type StaticPlacement string

const (
	StaticBottom     StaticPlacement = "bottom"
	StaticIntermixed StaticPlacement = "intermixed"
	StaticGrouped    StaticPlacement = "groupedWithNamespace"
)

const DefaultSortOrder = "System"

var staticPlacementValues = []string{
	string(StaticBottom),
	string(StaticIntermixed),
	string(StaticGrouped),
}

type Values struct {
	// SortOrder lists namespace prefixes from highest to lowest
	// priority; matching is a case-sensitive prefix match.
	SortOrder                []string
	SplitGroups              bool
	DisableUnusedRemoval     bool
	ProcessConditionalBlocks bool
	StaticPlacement          StaticPlacement
}

type Overrides struct {
	SortOrder                *string
	SplitGroups              *bool
	DisableUnusedRemoval     *bool
	ProcessConditionalBlocks *bool
	StaticPlacement          *string
}

func Defaults() Values {
	return Values{
		SortOrder:       ParseSortOrder(DefaultSortOrder),
		SplitGroups:     true,
		StaticPlacement: StaticBottom,
	}
}

// ParseSortOrder splits the configured priority list on whitespace.
func ParseSortOrder(value string) []string {
	return strings.Fields(value)
}

func ParseStaticPlacement(value string) (StaticPlacement, error) {
	switch StaticPlacement(strings.TrimSpace(value)) {
	case StaticBottom:
		return StaticBottom, nil
	case StaticIntermixed:
		return StaticIntermixed, nil
	case StaticGrouped:
		return StaticGrouped, nil
	default:
		return "", fmt.Errorf("invalid static placement %q (must be one of: %s)", value, strings.Join(staticPlacementValues, ", "))
	}
}

func (o Overrides) Apply(base Values) Values {
	resolved := base
	if o.SortOrder != nil {
		resolved.SortOrder = ParseSortOrder(*o.SortOrder)
	}
	if o.SplitGroups != nil {
		resolved.SplitGroups = *o.SplitGroups
	}
	if o.DisableUnusedRemoval != nil {
		resolved.DisableUnusedRemoval = *o.DisableUnusedRemoval
	}
	if o.ProcessConditionalBlocks != nil {
		resolved.ProcessConditionalBlocks = *o.ProcessConditionalBlocks
	}
	if o.StaticPlacement != nil {
		resolved.StaticPlacement = StaticPlacement(strings.TrimSpace(*o.StaticPlacement))
	}
	return resolved
}

func (o Overrides) Validate() error {
	if o.StaticPlacement != nil {
		if _, err := ParseStaticPlacement(*o.StaticPlacement); err != nil {
			return err
		}
	}
	return nil
}

func (v Values) Validate() error {
	if _, err := ParseStaticPlacement(string(v.StaticPlacement)); err != nil {
		return err
	}
	return nil
}
