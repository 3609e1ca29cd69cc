package core_test

import (
	"fmt"

	"github.com/katalvlaran/itineria/core"
)

// ExampleGraph builds a two-town graph and walks the neighbours of one town.
func ExampleGraph() {
	g := core.NewGraph()
	_, _ = g.AddLocation(75, "Paris", 48.8566, 2.3522)
	_, _ = g.AddLocation(69, "Lyon", 45.7640, 4.8357)
	_, _ = g.AddLink(75, 69, 465, 270)

	paris, _ := g.Location(75)
	for _, adj := range g.Neighbours(paris) {
		fmt.Printf("%s -> %s: %gkm, %gmin\n", paris.Name, adj.Location.Name, adj.Link.Distance, adj.Link.Time)
	}
	// Output: Paris -> Lyon: 465km, 270min
}
