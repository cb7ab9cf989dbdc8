package game

// NeutralColor is the color of unclaimed territory.
const NeutralColor = "#2b1d3d"

// Tile is one cell of the fixed grid: the unit of ownership and combat.
// Tiles are created once at startup and only ever reset, never destroyed.
type Tile struct {
	ID         int
	Owner      string // "" = unclaimed
	Defense    int
	MaxDefense int
	Unit       string // catalog key, "" = empty
	IsHome     bool
	Color      string
}

// reset returns the tile to the fully-neutral default.
func (t *Tile) reset(baseDefense int) {
	t.Owner = ""
	t.Defense = baseDefense
	t.MaxDefense = baseDefense
	t.Unit = ""
	t.IsHome = false
	t.Color = NeutralColor
}
