package board

// DeckType identifies one of the two card decks.
type DeckType string

const (
	DeckChance         DeckType = "chance"
	DeckCommunityChest DeckType = "community_chest"
)

// DeckSize is the number of cards in each deck.
const DeckSize = 16

// CardAction is the closed set of things a card can do.
type CardAction interface {
	cardAction()
}

// MoveTo advances the token to an absolute position. Passing GO pays salary.
type MoveTo struct{ Position int }

// MoveToNearest advances to the next railroad or utility clockwise.
type MoveToNearest struct{ Kind PropertyKind }

// MoveRelative moves by a signed offset; negative offsets never pass GO.
type MoveRelative struct{ Spaces int }

type Collect struct{ Amount int }

type Pay struct{ Amount int }

type GetOutOfJailFree struct{}

type GoToJail struct{}

// PayPerBuilding charges per house and per hotel owned.
type PayPerBuilding struct {
	PerHouse int
	PerHotel int
}

type PayEachPlayer struct{ Amount int }

type CollectFromEachPlayer struct{ Amount int }

func (MoveTo) cardAction()                {}
func (MoveToNearest) cardAction()         {}
func (MoveRelative) cardAction()          {}
func (Collect) cardAction()               {}
func (Pay) cardAction()                   {}
func (GetOutOfJailFree) cardAction()      {}
func (GoToJail) cardAction()              {}
func (PayPerBuilding) cardAction()        {}
func (PayEachPlayer) cardAction()         {}
func (CollectFromEachPlayer) cardAction() {}

// Card is a single Chance or Community Chest card. IDs run 1..16 per deck.
type Card struct {
	ID     int
	Deck   DeckType
	Text   string
	Action CardAction
}

var chanceCards = [DeckSize]Card{
	{1, DeckChance, "Advance to Boardwalk", MoveTo{39}},
	{2, DeckChance, "Advance to Go (Collect $200)", MoveTo{0}},
	{3, DeckChance, "Advance to Illinois Avenue. If you pass Go, collect $200", MoveTo{24}},
	{4, DeckChance, "Advance to St. Charles Place. If you pass Go, collect $200", MoveTo{11}},
	{5, DeckChance, "Advance to the nearest Railroad. If unowned, you may buy it from the Bank. If owned, pay owner twice the rental to which they are otherwise entitled", MoveToNearest{KindRailroad}},
	{6, DeckChance, "Advance to the nearest Railroad. If unowned, you may buy it from the Bank. If owned, pay owner twice the rental to which they are otherwise entitled", MoveToNearest{KindRailroad}},
	{7, DeckChance, "Advance token to nearest Utility. If unowned, you may buy it from the Bank. If owned, throw dice and pay owner 10 times amount thrown", MoveToNearest{KindUtility}},
	{8, DeckChance, "Bank pays you dividend of $50", Collect{50}},
	{9, DeckChance, "Get Out of Jail Free", GetOutOfJailFree{}},
	{10, DeckChance, "Go Back 3 Spaces", MoveRelative{-3}},
	{11, DeckChance, "Go to Jail. Go directly to Jail, do not pass Go, do not collect $200", GoToJail{}},
	{12, DeckChance, "Make general repairs on all your property. For each house pay $25. For each hotel pay $100", PayPerBuilding{25, 100}},
	{13, DeckChance, "Speeding fine $15", Pay{15}},
	{14, DeckChance, "Take a trip to Reading Railroad. If you pass Go, collect $200", MoveTo{5}},
	{15, DeckChance, "You have been elected Chairman of the Board. Pay each player $50", PayEachPlayer{50}},
	{16, DeckChance, "Your building loan matures. Collect $150", Collect{150}},
}

var communityChestCards = [DeckSize]Card{
	{1, DeckCommunityChest, "Advance to Go (Collect $200)", MoveTo{0}},
	{2, DeckCommunityChest, "Bank error in your favor. Collect $200", Collect{200}},
	{3, DeckCommunityChest, "Doctor's fee. Pay $50", Pay{50}},
	{4, DeckCommunityChest, "From sale of stock you get $50", Collect{50}},
	{5, DeckCommunityChest, "Get Out of Jail Free", GetOutOfJailFree{}},
	{6, DeckCommunityChest, "Go to Jail. Go directly to jail, do not pass Go, do not collect $200", GoToJail{}},
	{7, DeckCommunityChest, "Holiday fund matures. Receive $100", Collect{100}},
	{8, DeckCommunityChest, "Income tax refund. Collect $20", Collect{20}},
	{9, DeckCommunityChest, "It is your birthday. Collect $10 from every player", CollectFromEachPlayer{10}},
	{10, DeckCommunityChest, "Life insurance matures. Collect $100", Collect{100}},
	{11, DeckCommunityChest, "Pay hospital fees of $100", Pay{100}},
	{12, DeckCommunityChest, "Pay school fees of $50", Pay{50}},
	{13, DeckCommunityChest, "Receive $25 consultancy fee", Collect{25}},
	{14, DeckCommunityChest, "You are assessed for street repair. $40 per house. $115 per hotel", PayPerBuilding{40, 115}},
	{15, DeckCommunityChest, "You have won second prize in a beauty contest. Collect $10", Collect{10}},
	{16, DeckCommunityChest, "You inherit $100", Collect{100}},
}

// LookupCard returns card id (1..16) from deck.
func LookupCard(deck DeckType, id int) (Card, bool) {
	if id < 1 || id > DeckSize {
		return Card{}, false
	}
	switch deck {
	case DeckChance:
		return chanceCards[id-1], true
	case DeckCommunityChest:
		return communityChestCards[id-1], true
	default:
		return Card{}, false
	}
}

// DeckForSpace maps a card square to its deck.
func DeckForSpace(t SpaceType) (DeckType, bool) {
	switch t {
	case SpaceChance:
		return DeckChance, true
	case SpaceCommunityChest:
		return DeckCommunityChest, true
	default:
		return "", false
	}
}
