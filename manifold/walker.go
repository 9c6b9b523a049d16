// SPDX-License-Identifier: MIT

package manifold

// queueItem pairs a node with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state over a name adjacency list.
type walker struct {
	adj     map[string][]string
	queue   []queueItem
	visited map[string]bool
	parent  map[string]string
}

// shortestPath runs BFS from start and returns the node sequence to goal.
// Neighbours are expanded in registration order, so the result is
// deterministic.
func shortestPath(adj map[string][]string, start, goal string) ([]string, bool) {
	if start == goal {
		return []string{start}, true
	}
	w := &walker{
		adj:     adj,
		queue:   make([]queueItem, 0, len(adj)),
		visited: make(map[string]bool, len(adj)),
		parent:  make(map[string]string, len(adj)),
	}
	w.enqueue(start, 0, "")
	if !w.loop(goal) {
		return nil, false
	}

	return w.path(start, goal), true
}

// enqueue marks id visited, records its parent and appends it.
func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	if parent != "" {
		w.parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until goal is reached or the queue is empty.
func (w *walker) loop(goal string) bool {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]
		for _, nbr := range w.adj[item.id] {
			if w.visited[nbr] {
				continue
			}
			w.enqueue(nbr, item.depth+1, item.id)
			if nbr == goal {
				return true
			}
		}
	}

	return false
}

// path walks parent links back from goal.
func (w *walker) path(start, goal string) []string {
	var rev []string
	for cur := goal; cur != start; cur = w.parent[cur] {
		rev = append(rev, cur)
	}
	rev = append(rev, start)
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}

	return rev
}
