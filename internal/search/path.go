package search

// extendPath returns a new path made of path followed by node. The input is left untouched, so
// every queued entry owns its own sequence.
func extendPath[NodeType comparable](path []NodeType, node NodeType) []NodeType {
	next := make([]NodeType, len(path), len(path)+1)
	copy(next, path)

	return append(next, node)
}

// ReconstructPath turns the node sequence carried to a destination into the final path.
// The returned slice does not alias the input.
func ReconstructPath[NodeType comparable](trace []NodeType) []NodeType {
	path := make([]NodeType, len(trace))
	copy(path, trace)

	return path
}

// PathCost sums the resolved cost of every hop of path. It fails if a hop has no edge in graph,
// which makes it usable as a round-trip check of a returned path.
func PathCost[NodeType comparable](graph Graph[NodeType], resolver EdgeCostResolver, path []NodeType) (float64, error) {
	total := 0.0
	for i := 1; i < len(path); i++ {
		cost, err := EdgeCost(graph, resolver, path[i-1], path[i])
		if err != nil {
			return 0, err
		}
		total += cost
	}

	return total, nil
}
