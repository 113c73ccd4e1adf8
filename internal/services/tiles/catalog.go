package tiles

import (
	"slices"

	"github.com/mcoot/trampoline/internal/model"
)

// pairs lists every tile as front letter then back letter, in catalog order
var pairs = []string{
	"AE", "AI", "AM", "AO", "AR", "AS", "AT", "AU", "BE",
	"BN", "BT", "CA", "CI", "CN", "CT", "DC", "DN", "DR",
	"E-", "E-", "E-", "E-", "E-", "E-", "E-", "EC", "ED",
	"EG", "EH", "EL", "EN", "EO", "ES", "ET", "EY", "EZ",
	"FA", "FE", "FT", "GA", "GI", "HA", "HT", "IB", "ID",
	"IE", "IF", "IM", "IO", "IR", "IS", "IU", "JE", "KU",
	"LA", "LD", "LI", "LS", "ME", "MS", "MU", "N-", "NA",
	"NF", "NI", "NL", "NP", "NQ", "NT", "O-", "OC", "OF",
	"OJ", "OR", "OU", "PA", "PE", "PI", "QE", "QI", "RB",
	"RC", "RE", "RG", "RH", "RM", "RN", "RP", "RV", "S-",
	"S-", "SB", "SN", "SO", "SR", "SU", "SX", "T-", "TI",
	"TL", "TO", "TR", "TS", "TU", "TV", "UE", "UL", "UN",
	"UP", "UQ", "UR", "VE", "VS", "WS", "XE", "YO", "ZR",
}

// yellowBacks are the pairs printed yellow on both sides
var yellowBacks = map[string]bool{
	"KU": true,
	"WS": true,
}

// Size is the number of tiles in a full set
const Size = 117

// Catalog builds a fresh full tile set, IDs 1..Size in catalog order.
// Fronts are yellow; backs are green except for the all-yellow pairs.
func Catalog() model.TileSet {
	set := make(model.TileSet, len(pairs))
	for i, p := range pairs {
		letters := []rune(p)
		back := model.ColorGreen
		if yellowBacks[p] {
			back = model.ColorYellow
		}
		id := model.TileID(i + 1)
		set[id] = &model.Tile{
			ID: id,
			Faces: [2]model.Face{
				{Letter: letters[0], Color: model.ColorYellow},
				{Letter: letters[1], Color: back},
			},
		}
	}
	return set
}

// IDs returns every tile ID of a set in ascending order
func IDs(set model.TileSet) []model.TileID {
	ids := make([]model.TileID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
