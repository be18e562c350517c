package normalize

// defaultAliases covers the spellings the scraped sites disagree on most often.
// Aliases persisted in player_aliases are merged on top at startup.
var defaultAliases = map[string]string{
	"Nene Hilario":          "Nene",
	"Louis Williams":        "Lou Williams",
	"Taurean Waller-Prince": "Taurean Prince",
	"Wesley Iwundu":         "Wes Iwundu",
	"Juan Hernangomez":      "Juancho Hernangomez",
	"Guillermo Hernangomez": "Willy Hernangomez",
	"Maurice Harkless":      "Moe Harkless",
	"Sviatoslav Mykhailiuk": "Svi Mykhailiuk",
	"Ishmael Smith":         "Ish Smith",
	"Patrick Mills":         "Patty Mills",
	"Walter Lemon":          "Walt Lemon",
	"Timothe Luwawu":        "Timothe Luwawu-Cabarrot",
	"Mohamed Bamba":         "Mo Bamba",
}

var defaultCanonicals = []string{
	"Nikola Jokic",
	"Luka Doncic",
	"Bojan Bogdanovic",
	"Bogdan Bogdanovic",
	"Dario Saric",
	"Jusuf Nurkic",
	"Jonas Valanciunas",
	"Kristaps Porzingis",
	"Giannis Antetokounmpo",
	"JJ Redick",
	"CJ McCollum",
	"PJ Tucker",
	"TJ Warren",
	"OG Anunoby",
	"DeMar DeRozan",
	"D'Angelo Russell",
	"De'Aaron Fox",
	"Otto Porter",
	"Larry Nance",
	"Tim Hardaway",
	"Frank Mason",
	"Glenn Robinson",
	"James Ennis",
	"Jacob Evans",
	"Wendell Carter",
	"Kelly Oubre",
	"Dennis Smith",
	"Marvin Bagley",
	"Jaren Jackson",
	"Gary Trent",
}

// DefaultNameTable builds the built-in alias table merged with extra
// alias -> canonical pairs, typically loaded from storage.
func DefaultNameTable(extra map[string]string) (*NameTable, error) {
	aliases := make(map[string]string, len(defaultAliases)+len(extra))
	for a, c := range defaultAliases {
		aliases[a] = c
	}
	for a, c := range extra {
		aliases[a] = c
	}
	return NewNameTable(defaultCanonicals, aliases)
}
