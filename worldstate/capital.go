// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package worldstate

import (
	"fmt"
	"strings"
)

// PossibleBuildings is the fixed catalogue offered on every capital page.
var PossibleBuildings = []string{
	"Blacksmith",
	"Administrative Hall",
	"Marketplace",
	"Army Quarters",
	"Armoursmith",
	"Cathedral",
}

// capitalImageOverrides maps province ids whose capital image does not follow
// the <provinceId>.jpg naming convention.
var capitalImageOverrides = map[string]string{}

// CapitalImage returns the image file for a province's capital view.
func CapitalImage(provinceID string) string {
	if img, ok := capitalImageOverrides[provinceID]; ok {
		return img
	}
	return provinceID + ".jpg"
}

// SlugifyBuilding converts a building name to its icon slug:
// "Imperial Jewel (X)" -> "imperial_jewel", "Zbab's Hold" -> "zbabs_hold".
func SlugifyBuilding(name string) string {
	s := strings.ToLower(name)

	// Drop parenthesised tier tags like "(X)" or "(V)".
	for {
		open := strings.Index(s, "(")
		if open < 0 {
			break
		}
		end := strings.Index(s[open:], ")")
		if end < 0 {
			s = s[:open]
			break
		}
		s = s[:open] + s[open+end+1:]
	}

	var b strings.Builder
	lastUnderscore := true
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}

// BuildingIconPath returns the icon asset path for a building name.
func BuildingIconPath(name string) string {
	return "icons/" + SlugifyBuilding(name) + ".png"
}

func hasBuildingToken(buildings []string, token string) bool {
	for _, b := range buildings {
		if strings.Contains(b, token) {
			return true
		}
	}
	return false
}

// FlavourText narrates a province's prosperity from its building tier tags.
// Priority: "X" (legendary) over "V" (thriving) over the struggling default.
func FlavourText(prov Province) string {
	name := prov.Name
	if name == "" {
		name = "this place"
	}

	if hasBuildingToken(prov.Buildings, "X") {
		return fmt.Sprintf("The City of %s astonishes all that visit. "+
			"Streets are filled with bustling activity, and the markets spill over with goods from every corner of the Mapso. "+
			"Fine masonry, proud banners, and the steady rhythm of craftsmen at work make it clear: this is no ordinary city. "+
			"Even travellers who arrived weary leave with their eyes widened, and with stories worth telling.", name)
	}

	if hasBuildingToken(prov.Buildings, "V") {
		return fmt.Sprintf("%s feels like a place on the rise. "+
			"The air carries the sound of hammer and saw, and new faces arrive by road and river, immigrants and opportunists drawn by promise. "+
			"Old quarters are being renewed, trade grows steadier, and hope spreads quietly through the streets. "+
			"It is not yet a jewel, but it is moving in the right direction.", name)
	}

	return "You can see people doing their best to get by, but it is nearly not enough. " +
		"Houses need repairs, shutters hang crooked, and the poorer lanes feel one hard winter away from collapse. " +
		"Work is scarce, tempers run thin, and every improvement seems to demand coin the city does not have. " +
		"Still, there is resilience here, waiting for a stronger hand to guide it."
}

// BuildingView pairs a building name with its icon path.
type BuildingView struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CapitalView is everything the capital detail page renders.
type CapitalView struct {
	ProvinceID string         `json:"province_id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Owner      string         `json:"owner"`
	Income     int            `json:"income"`
	Flavour    string         `json:"flavour"`
	Image      string         `json:"image"`
	Built      []BuildingView `json:"built"`
	Possible   []BuildingView `json:"possible"`
}

func buildingViews(names []string) []BuildingView {
	views := make([]BuildingView, 0, len(names))
	for _, n := range names {
		views = append(views, BuildingView{Name: n, Icon: BuildingIconPath(n)})
	}
	return views
}

// Capital assembles the detail view for one province.
func (s *WorldState) Capital(provinceID string) (CapitalView, error) {
	prov, ok := s.Provinces[provinceID]
	if !ok {
		return CapitalView{}, fmt.Errorf("%w: %s", ErrUnknownProvince, provinceID)
	}

	name := prov.Name
	if name == "" {
		name = provinceID
	}

	return CapitalView{
		ProvinceID: provinceID,
		Name:       name,
		Type:       prov.Type,
		Owner:      s.OwnerName(provinceID),
		Income:     prov.Income,
		Flavour:    FlavourText(prov),
		Image:      CapitalImage(provinceID),
		Built:      buildingViews(prov.Buildings),
		Possible:   buildingViews(PossibleBuildings),
	}, nil
}
