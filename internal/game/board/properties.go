package board

import "sort"

// PropertyKind separates the three rent models.
type PropertyKind string

const (
	KindStreet   PropertyKind = "street"
	KindRailroad PropertyKind = "railroad"
	KindUtility  PropertyKind = "utility"
)

// Color names a street color group. Railroads and utilities have no color.
type Color string

const (
	ColorNone      Color = ""
	ColorBrown     Color = "brown"
	ColorLightBlue Color = "light_blue"
	ColorPink      Color = "pink"
	ColorOrange    Color = "orange"
	ColorRed       Color = "red"
	ColorYellow    Color = "yellow"
	ColorGreen     Color = "green"
	ColorDarkBlue  Color = "dark_blue"
)

// HotelLevel is the house count recorded for a hotel.
const HotelLevel = 5

// Property is the immutable definition of a purchasable square.
// Rent holds [base, 1 house, 2 houses, 3 houses, 4 houses, hotel] for streets
// and is zero for railroads and utilities.
type Property struct {
	ID        string
	Name      string
	Position  int
	Kind      PropertyKind
	Color     Color
	Price     int
	Rent      [6]int
	HouseCost int
	Mortgage  int
}

var properties = []Property{
	{"mediterranean", "Mediterranean Avenue", 1, KindStreet, ColorBrown, 60, [6]int{2, 10, 30, 90, 160, 250}, 50, 30},
	{"baltic", "Baltic Avenue", 3, KindStreet, ColorBrown, 60, [6]int{4, 20, 60, 180, 320, 450}, 50, 30},
	{"reading_rr", "Reading Railroad", 5, KindRailroad, ColorNone, 200, [6]int{}, 0, 100},
	{"oriental", "Oriental Avenue", 6, KindStreet, ColorLightBlue, 100, [6]int{6, 30, 90, 270, 400, 550}, 50, 50},
	{"vermont", "Vermont Avenue", 8, KindStreet, ColorLightBlue, 100, [6]int{6, 30, 90, 270, 400, 550}, 50, 50},
	{"connecticut", "Connecticut Avenue", 9, KindStreet, ColorLightBlue, 120, [6]int{8, 40, 100, 300, 450, 600}, 50, 60},
	{"st_charles", "St. Charles Place", 11, KindStreet, ColorPink, 140, [6]int{10, 50, 150, 450, 625, 750}, 100, 70},
	{"electric_company", "Electric Company", 12, KindUtility, ColorNone, 150, [6]int{}, 0, 75},
	{"states", "States Avenue", 13, KindStreet, ColorPink, 140, [6]int{10, 50, 150, 450, 625, 750}, 100, 70},
	{"virginia", "Virginia Avenue", 14, KindStreet, ColorPink, 160, [6]int{12, 60, 180, 500, 700, 900}, 100, 80},
	{"pennsylvania_rr", "Pennsylvania Railroad", 15, KindRailroad, ColorNone, 200, [6]int{}, 0, 100},
	{"st_james", "St. James Place", 16, KindStreet, ColorOrange, 180, [6]int{14, 70, 200, 550, 750, 950}, 100, 90},
	{"tennessee", "Tennessee Avenue", 18, KindStreet, ColorOrange, 180, [6]int{14, 70, 200, 550, 750, 950}, 100, 90},
	{"new_york", "New York Avenue", 19, KindStreet, ColorOrange, 200, [6]int{16, 80, 220, 600, 800, 1000}, 100, 100},
	{"kentucky", "Kentucky Avenue", 21, KindStreet, ColorRed, 220, [6]int{18, 90, 250, 700, 875, 1050}, 150, 110},
	{"indiana", "Indiana Avenue", 23, KindStreet, ColorRed, 220, [6]int{18, 90, 250, 700, 875, 1050}, 150, 110},
	{"illinois", "Illinois Avenue", 24, KindStreet, ColorRed, 240, [6]int{20, 100, 300, 750, 925, 1100}, 150, 120},
	{"bo_rr", "B&O Railroad", 25, KindRailroad, ColorNone, 200, [6]int{}, 0, 100},
	{"atlantic", "Atlantic Avenue", 26, KindStreet, ColorYellow, 260, [6]int{22, 110, 330, 800, 975, 1150}, 150, 130},
	{"ventnor", "Ventnor Avenue", 27, KindStreet, ColorYellow, 260, [6]int{22, 110, 330, 800, 975, 1150}, 150, 130},
	{"water_works", "Water Works", 28, KindUtility, ColorNone, 150, [6]int{}, 0, 75},
	{"marvin_gardens", "Marvin Gardens", 29, KindStreet, ColorYellow, 280, [6]int{24, 120, 360, 850, 1025, 1200}, 150, 140},
	{"pacific", "Pacific Avenue", 31, KindStreet, ColorGreen, 300, [6]int{26, 130, 390, 900, 1100, 1275}, 200, 150},
	{"north_carolina", "North Carolina Avenue", 32, KindStreet, ColorGreen, 300, [6]int{26, 130, 390, 900, 1100, 1275}, 200, 150},
	{"pennsylvania", "Pennsylvania Avenue", 34, KindStreet, ColorGreen, 320, [6]int{28, 150, 450, 1000, 1200, 1400}, 200, 160},
	{"short_line_rr", "Short Line Railroad", 35, KindRailroad, ColorNone, 200, [6]int{}, 0, 100},
	{"park_place", "Park Place", 37, KindStreet, ColorDarkBlue, 350, [6]int{35, 175, 500, 1100, 1300, 1500}, 200, 175},
	{"boardwalk", "Boardwalk", 39, KindStreet, ColorDarkBlue, 400, [6]int{50, 200, 600, 1400, 1700, 2000}, 200, 200},
}

var (
	propertiesByID       = make(map[string]*Property, len(properties))
	propertiesByPosition = make(map[int]*Property, len(properties))
	colorGroups          = make(map[Color][]string)
	railroadIDs          []string
	utilityIDs           []string
)

func init() {
	for i := range properties {
		p := &properties[i]
		propertiesByID[p.ID] = p
		propertiesByPosition[p.Position] = p
		switch p.Kind {
		case KindStreet:
			colorGroups[p.Color] = append(colorGroups[p.Color], p.ID)
		case KindRailroad:
			railroadIDs = append(railroadIDs, p.ID)
		case KindUtility:
			utilityIDs = append(utilityIDs, p.ID)
		}
	}
}

// LookupProperty returns the definition for id.
func LookupProperty(id string) (Property, bool) {
	p, ok := propertiesByID[id]
	if !ok {
		return Property{}, false
	}
	return *p, true
}

// PropertyAt returns the property on a board position, if any.
func PropertyAt(position int) (Property, bool) {
	p, ok := propertiesByPosition[position]
	if !ok {
		return Property{}, false
	}
	return *p, true
}

// ColorGroup lists the street ids sharing color, in board order.
func ColorGroup(color Color) []string {
	return append([]string(nil), colorGroups[color]...)
}

// Colors returns every street color in board order.
func Colors() []Color {
	out := make([]Color, 0, len(colorGroups))
	for c := range colorGroups {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return propertiesByID[colorGroups[out[i]][0]].Position < propertiesByID[colorGroups[out[j]][0]].Position
	})
	return out
}

func RailroadIDs() []string { return append([]string(nil), railroadIDs...) }

func UtilityIDs() []string { return append([]string(nil), utilityIDs...) }

// PropertyIDs returns all 28 property ids in board order.
func PropertyIDs() []string {
	out := make([]string, len(properties))
	for i, p := range properties {
		out[i] = p.ID
	}
	return out
}
