package validation

// NamedColor is one palette entry as written in the config file.
type NamedColor struct {
	Name  string
	Value string
}

// IsHexColor accepts only the six-digit #RRGGBB form, which both GTK CSS and
// lipgloss understand.
func IsHexColor(value string) bool {
	return Var(value, "hexcolor,len=7") == nil
}

// ValidateColors reports every entry of colors that is not #RRGGBB, in order.
func ValidateColors(prefix string, colors []NamedColor) []string {
	var errs []string
	for _, c := range colors {
		if !IsHexColor(c.Value) {
			errs = append(errs, prefix+"."+c.Name+" must be a hex color like #RRGGBB")
		}
	}
	return errs
}
