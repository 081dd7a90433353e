package pricing

// VariantGroup is a named set of mutually exclusive options. A group either
// hangs off the product directly or off a parent option as a subgroup.
type VariantGroup struct {
	Name    string
	Options []VariantOption
}

// VariantOption is one selectable choice within a group. Selecting it adds
// PriceAdjustment once per unit and makes its Subgroups eligible.
type VariantOption struct {
	ID              uint
	Value           string
	PriceAdjustment float64
	Subgroups       []VariantGroup
}

// OptionChoice records the option picked for one group, plus any picks made
// in that option's subgroups.
type OptionChoice struct {
	ID    uint                    `json:"id"`
	Value string                  `json:"value"`
	Sub   map[string]OptionChoice `json:"sub,omitempty"`
}

// SelectedOptions maps group name to the choice made for that group.
type SelectedOptions map[string]OptionChoice

// VariantAdjustment resolves the total signed price delta contributed by the
// selected options and their subgroup selections. The adjustment applies once
// per unit; it is never multiplied by area.
//
// A selection that no longer matches any catalog option (stale selection)
// contributes zero. The catalog may change under an open configurator, so
// that case is expected, not an error.
func VariantAdjustment(groups []VariantGroup, selected SelectedOptions) float64 {
	if len(groups) == 0 || len(selected) == 0 {
		return 0
	}

	var adjustment float64
	for _, group := range groups {
		choice, ok := selected[group.Name]
		if !ok {
			continue
		}

		option := matchOption(group.Options, choice)
		if option == nil {
			continue
		}
		adjustment += option.PriceAdjustment

		// One level of nesting: subgroups only count while their parent
		// option is the selected one.
		if len(option.Subgroups) == 0 || len(choice.Sub) == 0 {
			continue
		}
		for _, subgroup := range option.Subgroups {
			subChoice, ok := choice.Sub[subgroup.Name]
			if !ok {
				continue
			}
			if subOption := matchOption(subgroup.Options, subChoice); subOption != nil {
				adjustment += subOption.PriceAdjustment
			}
		}
	}
	return adjustment
}

// matchOption finds the option a choice refers to, by ID first and value as a
// fallback for selections created before the option had a stable ID.
func matchOption(options []VariantOption, choice OptionChoice) *VariantOption {
	if choice.ID != 0 {
		for i := range options {
			if options[i].ID == choice.ID {
				return &options[i]
			}
		}
	}
	if choice.Value != "" {
		for i := range options {
			if options[i].Value == choice.Value {
				return &options[i]
			}
		}
	}
	return nil
}
