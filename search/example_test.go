package search_test

import (
	"fmt"

	"github.com/katalvlaran/itineria/core"
	"github.com/katalvlaran/itineria/search"
)

// ExampleSearch compares the cheapest route under both metrics on a triangle
// where the direct link is long but fast.
func ExampleSearch() {
	g := core.NewGraph()
	_, _ = g.AddLocation(1, "P", 48.00, 2.00)
	_, _ = g.AddLocation(2, "Q", 48.05, 2.05)
	_, _ = g.AddLocation(3, "R", 48.10, 2.10)
	_, _ = g.AddLink(1, 2, 10, 5)
	_, _ = g.AddLink(2, 3, 10, 20)
	_, _ = g.AddLink(1, 3, 30, 3)

	p, _ := g.Location(1)
	r, _ := g.Location(3)
	for _, m := range search.Metrics() {
		goal, err := search.Search(g, search.UniformCost, p, r, m)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		links, cost := search.ReconstructPath(goal)
		fmt.Printf("%s: %d links, %g %s\n", m, len(links), cost, m.Unit())
	}
	// Output:
	// distance: 2 links, 20 km
	// time: 1 links, 3 min
}

// ExampleGreedyBestFirst shows that greedy reports the real cost of the path
// it committed to, while its priority holds the heuristic estimate.
func ExampleGreedyBestFirst() {
	g := core.NewGraph()
	_, _ = g.AddLocation(1, "P", 48.00, 2.00)
	_, _ = g.AddLocation(2, "Q", 48.05, 2.05)
	_, _ = g.AddLocation(3, "R", 48.10, 2.10)
	_, _ = g.AddLink(1, 2, 10, 5)
	_, _ = g.AddLink(2, 3, 10, 20)
	_, _ = g.AddLink(1, 3, 30, 3)

	p, _ := g.Location(1)
	r, _ := g.Location(3)
	goal, _ := search.GreedyBestFirst(g, p, r, search.Distance)
	for _, loc := range goal.Path() {
		fmt.Print(loc.Name, " ")
	}
	fmt.Println(goal.Cost, goal.Priority)
	// Output: P R 30 0
}
