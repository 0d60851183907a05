package entity

// SpaceKind tags the 12 non-asset board positions plus the asset ones.
type SpaceKind string

const (
	SpaceGo          SpaceKind = "go"
	SpaceAsset       SpaceKind = "asset"
	SpaceChest       SpaceKind = "community_chest"
	SpaceChance      SpaceKind = "chance"
	SpaceIncomeTax   SpaceKind = "income_tax"
	SpaceLuxuryTax   SpaceKind = "luxury_tax"
	SpaceJail        SpaceKind = "jail"
	SpaceFreeParking SpaceKind = "free_parking"
	SpaceGoToJail    SpaceKind = "go_to_jail"
)

const (
	BoardSize = 40

	PositionGo          = 0
	PositionJail        = 10
	PositionFreeParking = 20
	PositionGoToJail    = 30

	GoSalary     = 200
	IncomeTaxFee = 200
	LuxuryTaxFee = 100
	JailFine     = 50
)

// Space is one board position. Asset is set only for SpaceAsset.
type Space struct {
	Kind  SpaceKind
	Name  string
	Asset *Asset
}

// Board holds the 40 spaces. Space identities are immutable for the whole
// game; only the asset fields inside them mutate.
type Board struct {
	Spaces [BoardSize]*Space
}

// Space returns the space at the position, wrapping around the board.
func (that *Board) Space(position int) *Space {
	return that.Spaces[((position%BoardSize)+BoardSize)%BoardSize]
}

// Assets lists the 28 purchasable positions in board order.
func (that *Board) Assets() []*Asset {
	var assets []*Asset
	for _, space := range that.Spaces {
		if space.Kind == SpaceAsset {
			assets = append(assets, space.Asset)
		}
	}
	return assets
}

// AssetPosition finds the board slot of an asset, or -1.
func (that *Board) AssetPosition(asset *Asset) int {
	for i, space := range that.Spaces {
		if space.Asset == asset {
			return i
		}
	}
	return -1
}

// FindAsset resolves an asset by name, or nil.
func (that *Board) FindAsset(name string) *Asset {
	for _, space := range that.Spaces {
		if space.Kind == SpaceAsset && space.Asset.Name == name {
			return space.Asset
		}
	}
	return nil
}

func standard(name, group string, groupSize, price, mortgage, improvementCost int, rents ...int) *Space {
	return &Space{Kind: SpaceAsset, Name: name, Asset: &Asset{
		Name: name, Group: group, GroupSize: groupSize, Variant: VariantStandard,
		Price: price, MortgageValue: mortgage, ImprovementCost: improvementCost, RentSchedule: rents,
	}}
}

func transit(name string) *Space {
	return &Space{Kind: SpaceAsset, Name: name, Asset: &Asset{
		Name: name, Group: GroupTransit, GroupSize: 4, Variant: VariantTransit,
		Price: 200, MortgageValue: 100, RentSchedule: []int{25, 50, 100, 200},
	}}
}

func utility(name string) *Space {
	return &Space{Kind: SpaceAsset, Name: name, Asset: &Asset{
		Name: name, Group: GroupUtilities, GroupSize: 2, Variant: VariantUtility,
		Price: 150, MortgageValue: 75, RentSchedule: []int{4, 10},
	}}
}

func special(kind SpaceKind, name string) *Space {
	return &Space{Kind: kind, Name: name}
}

// NewBoard builds the standard 40-position board.
func NewBoard() *Board {
	board := &Board{}
	spaces := []*Space{
		special(SpaceGo, "Go"),
		standard("Mediterranean Avenue", GroupBrown, 2, 60, 30, 50, 2, 10, 30, 90, 160, 250),
		special(SpaceChest, "Community Chest"),
		standard("Baltic Avenue", GroupBrown, 2, 60, 30, 50, 4, 20, 60, 180, 320, 450),
		special(SpaceIncomeTax, "Income Tax"),
		transit("Reading Railroad"),
		standard("Oriental Avenue", GroupLightBlue, 3, 100, 50, 50, 6, 30, 90, 270, 400, 550),
		special(SpaceChance, "Chance"),
		standard("Vermont Avenue", GroupLightBlue, 3, 100, 50, 50, 6, 30, 90, 270, 400, 550),
		standard("Connecticut Avenue", GroupLightBlue, 3, 120, 60, 50, 8, 40, 100, 300, 450, 600),
		special(SpaceJail, "Jail"),
		standard("St. Charles Place", GroupPink, 3, 140, 70, 100, 10, 50, 150, 450, 625, 750),
		utility("Electric Company"),
		standard("States Avenue", GroupPink, 3, 140, 70, 100, 10, 50, 150, 450, 625, 750),
		standard("Virginia Avenue", GroupPink, 3, 160, 80, 100, 12, 60, 180, 500, 700, 900),
		transit("Pennsylvania Railroad"),
		standard("St. James Place", GroupOrange, 3, 180, 90, 100, 14, 70, 200, 550, 750, 950),
		special(SpaceChest, "Community Chest"),
		standard("Tennessee Avenue", GroupOrange, 3, 180, 90, 100, 14, 70, 200, 550, 750, 950),
		standard("New York Avenue", GroupOrange, 3, 200, 100, 100, 16, 80, 220, 600, 800, 1000),
		special(SpaceFreeParking, "Free Parking"),
		standard("Kentucky Avenue", GroupRed, 3, 220, 110, 150, 18, 90, 250, 700, 875, 1050),
		special(SpaceChance, "Chance"),
		standard("Indiana Avenue", GroupRed, 3, 220, 110, 150, 18, 90, 250, 700, 875, 1050),
		standard("Illinois Avenue", GroupRed, 3, 240, 120, 150, 20, 100, 300, 750, 925, 1100),
		transit("B&O Railroad"),
		standard("Atlantic Avenue", GroupYellow, 3, 260, 130, 150, 22, 110, 330, 800, 975, 1150),
		standard("Ventnor Avenue", GroupYellow, 3, 260, 130, 150, 22, 110, 330, 800, 975, 1150),
		utility("Water Works"),
		standard("Marvin Gardens", GroupYellow, 3, 280, 140, 150, 24, 120, 360, 850, 1025, 1200),
		special(SpaceGoToJail, "Go To Jail"),
		standard("Pacific Avenue", GroupGreen, 3, 300, 150, 200, 26, 130, 390, 900, 1100, 1275),
		standard("North Carolina Avenue", GroupGreen, 3, 300, 150, 200, 26, 130, 390, 900, 1100, 1275),
		special(SpaceChest, "Community Chest"),
		standard("Pennsylvania Avenue", GroupGreen, 3, 320, 160, 200, 28, 150, 450, 1000, 1200, 1400),
		transit("Short Line"),
		special(SpaceChance, "Chance"),
		standard("Park Place", GroupDarkBlue, 2, 350, 175, 200, 35, 175, 500, 1100, 1300, 1500),
		special(SpaceLuxuryTax, "Luxury Tax"),
		standard("Boardwalk", GroupDarkBlue, 2, 400, 200, 200, 50, 200, 600, 1400, 1700, 2000),
	}
	copy(board.Spaces[:], spaces)
	return board
}
