package console

import (
	"fmt"
	"strconv"
)

// Colour is the name and board letter shown for one player
type Colour struct {
	Name   string
	Letter byte
}

// Palette assigns colours to player indexes in order
type Palette []Colour

// DefaultPalette starts with the two classic colours
var DefaultPalette = Palette{
	{Name: "GREEN", Letter: 'G'},
	{Name: "RED", Letter: 'R'},
	{Name: "YELLOW", Letter: 'Y'},
	{Name: "BLUE", Letter: 'B'},
	{Name: "MAGENTA", Letter: 'M'},
	{Name: "CYAN", Letter: 'C'},
	{Name: "WHITE", Letter: 'W'},
	{Name: "ORANGE", Letter: 'O'},
}

// Colour returns the colour for a player. Players past the end of the
// palette are named P<n> and drawn with their 1-based number.
func (p Palette) Colour(player int) Colour {
	if player >= 0 && player < len(p) {
		return p[player]
	}
	letter := byte('#')
	if player >= 0 && player < 9 {
		letter = strconv.Itoa(player + 1)[0]
	}
	return Colour{Name: fmt.Sprintf("P%d", player+1), Letter: letter}
}

// Label formats a player the way prompts and results show them
func (p Palette) Label(player int) string {
	return fmt.Sprintf("Player %d [%s]", player+1, p.Colour(player).Name)
}
