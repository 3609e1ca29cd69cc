// Package itineria finds routes between towns of a weighted road network with
// six interchangeable search strategies and compares the effort each one spends.
//
// What is in the box?
//
//	• Graph model: locations with coordinates, links carrying a distance and a time
//	• Uninformed search: breadth-first, depth-first, iterative-deepening depth-first
//	• Informed search: uniform-cost, greedy best-first, A* with a crow-flies heuristic
//	• Route rendering: human readable itineraries and GeoJSON
//	• Side-by-side comparison of strategies on a worker pool
//	• A CLI and an HTTP API over a bundled network of French towns
//
// Everything is organized under these subpackages:
//
//	core/       Graph, Location, Link and the sentinel errors of graph construction
//	heuristic/  crow-flies (haversine), zero and time-bound estimates
//	search/     Node, frontiers, Strategy, Metric, the six strategies and options
//	route/      Route built from a goal node, GeoJSON export of routes and networks
//	loader/     CSV and YAML network readers, the bundled sample network
//	compare/    concurrent strategy comparison on an ants pool
//	config/     layered YAML, .env and environment settings, logrus setup
//	server/     gorilla/mux HTTP API
//	cmd/itineria  the cobra command line
//
// Quick start:
//
//	g, _ := loader.Bundled()
//	paris, _ := g.Find("Paris")
//	nice, _ := g.Find("Nice")
//	goal, _ := search.Search(g, search.AStar, paris, nice, search.Distance)
//	fmt.Println(route.New(search.AStar, search.Distance, goal, search.Stats{}))
package itineria
