package profile

// Theme is a named color palette, stored on the profile by identifier and
// applied by the presentation layer.
type Theme struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Colors map[string]string `json:"colors"`
}

// Themes is the fixed palette set shipped with the application.
// Colors map CSS custom properties to space-separated RGB channels.
var Themes = []Theme{
	{
		ID:   "vibrant",
		Name: "Vibrante",
		Colors: map[string]string{
			"--color-primary":             "217 70 239",
			"--color-primary-light":       "240 171 252",
			"--color-primary-dark":        "192 38 211",
			"--color-primary-super-light": "245 208 254",
			"--color-accent":              "163 230 53",
			"--color-accent-light":        "190 242 100",
		},
	},
	{
		ID:   "emerald",
		Name: "Esmeralda",
		Colors: map[string]string{
			"--color-primary":             "16 185 129",
			"--color-primary-light":       "52 211 153",
			"--color-primary-dark":        "5 150 105",
			"--color-primary-super-light": "209 250 229",
			"--color-accent":              "6 182 212",
			"--color-accent-light":        "34 211 238",
		},
	},
	{
		ID:   "sky",
		Name: "Céu",
		Colors: map[string]string{
			"--color-primary":             "14 165 233",
			"--color-primary-light":       "56 189 248",
			"--color-primary-dark":        "2 132 199",
			"--color-primary-super-light": "224 242 254",
			"--color-accent":              "244 63 94",
			"--color-accent-light":        "251 113 133",
		},
	},
	{
		ID:   "indigo",
		Name: "Índigo",
		Colors: map[string]string{
			"--color-primary":             "99 102 241",
			"--color-primary-light":       "129 140 248",
			"--color-primary-dark":        "79 70 229",
			"--color-primary-super-light": "224 231 255",
			"--color-accent":              "245 158 11",
			"--color-accent-light":        "251 191 36",
		},
	},
	{
		ID:   "rose",
		Name: "Rosa",
		Colors: map[string]string{
			"--color-primary":             "244 63 94",
			"--color-primary-light":       "251 113 133",
			"--color-primary-dark":        "225 29 72",
			"--color-primary-super-light": "255 228 230",
			"--color-accent":              "20 184 166",
			"--color-accent-light":        "45 212 191",
		},
	},
	{
		ID:   "violet",
		Name: "Violeta",
		Colors: map[string]string{
			"--color-primary":             "139 92 246",
			"--color-primary-light":       "167 139 250",
			"--color-primary-dark":        "124 58 237",
			"--color-primary-super-light": "237 233 254",
			"--color-accent":              "236 72 153",
			"--color-accent-light":        "244 114 182",
		},
	},
}

// DefaultTheme applies when no session is active or the stored identifier is
// unknown.
func DefaultTheme() Theme {
	return Themes[0]
}

func ThemeByID(id string) (Theme, bool) {
	for _, t := range Themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}
