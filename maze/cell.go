package maze

// Direction names one of the four grid-adjacent steps from a cell.
type Direction string

const (
	North Direction = "North"
	East  Direction = "East"
	South Direction = "South"
	West  Direction = "West"
)

// Delta returns the row and column offsets of the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	}
	return 0, 0
}

// Directions in the order neighbors are enumerated before shuffling.
var Directions = [4]Direction{North, East, South, West}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Step returns the position one cell away in the given direction.
func (p CellPosition) Step(d Direction) CellPosition {
	dr, dc := d.Delta()
	return CellPosition{Row: p.Row + dr, Col: p.Col + dc}
}

// Move represents a movement from one cell to another in a specific direction.
type Move struct {
	From      CellPosition
	To        CellPosition
	Direction Direction
}

// Cell represents a single cell in a maze grid with a wall flag for each side.
type Cell struct {
	NorthWall bool `json:"north"` // NorthWall indicates whether there is a wall on the north side of the cell.
	SouthWall bool `json:"south"` // SouthWall indicates whether there is a wall on the south side of the cell.
	EastWall  bool `json:"east"`  // EastWall indicates whether there is a wall on the east side of the cell.
	WestWall  bool `json:"west"`  // WestWall indicates whether there is a wall on the west side of the cell.
}

// HasWall reports whether the cell is closed on the given side.
func (c Cell) HasWall(d Direction) bool {
	switch d {
	case North:
		return c.NorthWall
	case South:
		return c.SouthWall
	case East:
		return c.EastWall
	case West:
		return c.WestWall
	}
	return true
}
