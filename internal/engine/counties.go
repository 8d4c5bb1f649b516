package engine

import "slices"

// CountyNames maps every capturable county code to its display name.
// These codes are the identity space for ownership records, so the set
// is fixed: the 41 counties plus the capital.
var CountyNames = map[string]string{
	"ROAB": "Alba",
	"ROAR": "Arad",
	"ROAG": "Arges",
	"ROBC": "Bacau",
	"ROBH": "Bihor",
	"ROBN": "Bistrita-Nasaud",
	"ROBT": "Botosani",
	"ROBR": "Braila",
	"ROBV": "Brasov",
	"ROB":  "București",
	"ROBZ": "Buzau",
	"ROCL": "Calarasi",
	"ROCS": "Caras-Severin",
	"ROCJ": "Cluj",
	"ROCT": "Constanta",
	"ROCV": "Covasna",
	"RODB": "Dambovita",
	"RODJ": "Dolj",
	"ROGL": "Galati",
	"ROGR": "Giurgiu",
	"ROGJ": "Gorj",
	"ROHR": "Harghita",
	"ROHD": "Hunedoara",
	"ROIL": "Ialomita",
	"ROIS": "Iasi",
	"ROIF": "Ilfov",
	"ROMM": "Maramures",
	"ROMH": "Mehedinti",
	"ROMS": "Mures",
	"RONT": "Neamt",
	"ROOT": "Olt",
	"ROPH": "Prahova",
	"ROSJ": "Salaj",
	"ROSM": "Satu Mare",
	"ROSB": "Sibiu",
	"ROSV": "Suceava",
	"ROTR": "Teleorman",
	"ROTM": "Timis",
	"ROTL": "Tulcea",
	"ROVL": "Valcea",
	"ROVS": "Vaslui",
	"ROVN": "Vrancea",
}

// ColorPalette is the closed set of player colors, in assignment order.
// Join hands out the first color not already taken in the room.
var ColorPalette = []string{
	"red", "blue", "green", "yellow", "purple",
	"orange", "pink", "cyan", "lime", "teal",
}

func IsCounty(code string) bool {
	_, ok := CountyNames[code]
	return ok
}

// CountyCodes returns every county code in a stable (sorted) order,
// mainly for initial assignment and tests.
func CountyCodes() []string {
	codes := make([]string, 0, len(CountyNames))
	for code := range CountyNames {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}
