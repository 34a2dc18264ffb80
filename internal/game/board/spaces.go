package board

import "fmt"

const (
	BoardSize        = 40
	GoPosition       = 0
	JailPosition     = 10
	GoToJailPosition = 30
)

// SpaceType classifies a board square.
type SpaceType string

const (
	SpaceGo             SpaceType = "go"
	SpaceProperty       SpaceType = "property"
	SpaceCommunityChest SpaceType = "community_chest"
	SpaceChance         SpaceType = "chance"
	SpaceTax            SpaceType = "tax"
	SpaceJail           SpaceType = "jail"
	SpaceFreeParking    SpaceType = "free_parking"
	SpaceGoToJail       SpaceType = "go_to_jail"
)

// Space is one of the 40 squares. PropertyID is set for property spaces and
// TaxAmount for tax spaces.
type Space struct {
	Position   int
	Name       string
	Type       SpaceType
	PropertyID string
	TaxAmount  int
}

var spaces = [BoardSize]Space{
	{0, "GO", SpaceGo, "", 0},
	{1, "Mediterranean Avenue", SpaceProperty, "mediterranean", 0},
	{2, "Community Chest", SpaceCommunityChest, "", 0},
	{3, "Baltic Avenue", SpaceProperty, "baltic", 0},
	{4, "Income Tax", SpaceTax, "", 200},
	{5, "Reading Railroad", SpaceProperty, "reading_rr", 0},
	{6, "Oriental Avenue", SpaceProperty, "oriental", 0},
	{7, "Chance", SpaceChance, "", 0},
	{8, "Vermont Avenue", SpaceProperty, "vermont", 0},
	{9, "Connecticut Avenue", SpaceProperty, "connecticut", 0},
	{10, "Jail / Just Visiting", SpaceJail, "", 0},
	{11, "St. Charles Place", SpaceProperty, "st_charles", 0},
	{12, "Electric Company", SpaceProperty, "electric_company", 0},
	{13, "States Avenue", SpaceProperty, "states", 0},
	{14, "Virginia Avenue", SpaceProperty, "virginia", 0},
	{15, "Pennsylvania Railroad", SpaceProperty, "pennsylvania_rr", 0},
	{16, "St. James Place", SpaceProperty, "st_james", 0},
	{17, "Community Chest", SpaceCommunityChest, "", 0},
	{18, "Tennessee Avenue", SpaceProperty, "tennessee", 0},
	{19, "New York Avenue", SpaceProperty, "new_york", 0},
	{20, "Free Parking", SpaceFreeParking, "", 0},
	{21, "Kentucky Avenue", SpaceProperty, "kentucky", 0},
	{22, "Chance", SpaceChance, "", 0},
	{23, "Indiana Avenue", SpaceProperty, "indiana", 0},
	{24, "Illinois Avenue", SpaceProperty, "illinois", 0},
	{25, "B&O Railroad", SpaceProperty, "bo_rr", 0},
	{26, "Atlantic Avenue", SpaceProperty, "atlantic", 0},
	{27, "Ventnor Avenue", SpaceProperty, "ventnor", 0},
	{28, "Water Works", SpaceProperty, "water_works", 0},
	{29, "Marvin Gardens", SpaceProperty, "marvin_gardens", 0},
	{30, "Go To Jail", SpaceGoToJail, "", 0},
	{31, "Pacific Avenue", SpaceProperty, "pacific", 0},
	{32, "North Carolina Avenue", SpaceProperty, "north_carolina", 0},
	{33, "Community Chest", SpaceCommunityChest, "", 0},
	{34, "Pennsylvania Avenue", SpaceProperty, "pennsylvania", 0},
	{35, "Short Line Railroad", SpaceProperty, "short_line_rr", 0},
	{36, "Chance", SpaceChance, "", 0},
	{37, "Park Place", SpaceProperty, "park_place", 0},
	{38, "Luxury Tax", SpaceTax, "", 100},
	{39, "Boardwalk", SpaceProperty, "boardwalk", 0},
}

// SpaceAt returns the square at position. Positions outside 0..39 are an error.
func SpaceAt(position int) (Space, error) {
	if position < 0 || position >= BoardSize {
		return Space{}, fmt.Errorf("position %d out of range", position)
	}
	return spaces[position], nil
}

// Spaces returns a copy of the full board in position order.
func Spaces() []Space {
	out := make([]Space, BoardSize)
	copy(out, spaces[:])
	return out
}

// Normalize wraps any integer position onto the board.
func Normalize(position int) int {
	return ((position % BoardSize) + BoardSize) % BoardSize
}
