package linearblock

import (
	"context"
	"runtime"
	"sync"

	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
)

// Girth calculates the length of the smallest cycle of the tanner graph induced by H,
// or -1 when the graph has no cycles.
// threads specifies the number of threads to use if <=0 will use runtime.NumCPU()
func Girth(ctx context.Context, H mat.SparseMat, threads int) int {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	rows, _ := H.Dims()
	adjacent := tanner(H)

	pool := threadpool.NewFixedSize(ctx, threads, rows)
	girth := -1
	mux := sync.Mutex{}
	for i := 0; i < rows; i++ {
		check := i
		pool.Add(func() {
			mux.Lock()
			limit := girth
			mux.Unlock()

			g := shortestCycle(adjacent, check, limit)

			mux.Lock()
			if g > 0 && (girth == -1 || g < girth) {
				girth = g
			}
			mux.Unlock()
		})
	}
	pool.Wait()
	return girth
}

// tanner lists the neighbors of every node, check nodes come first followed by the variable nodes.
func tanner(H mat.SparseMat) [][]int {
	rows, cols := H.Dims()
	adjacent := make([][]int, rows+cols)
	for r := 0; r < rows; r++ {
		for _, c := range H.Row(r).NonzeroArray() {
			adjacent[r] = append(adjacent[r], rows+c)
			adjacent[rows+c] = append(adjacent[rows+c], r)
		}
	}
	return adjacent
}

// shortestCycle runs a BFS from root and returns the smallest cycle it closes that is
// shorter than limit (-1 means no limit). Returns -1 if there is none.
func shortestCycle(adjacent [][]int, root, limit int) int {
	dist := make([]int, len(adjacent))
	parent := make([]int, len(adjacent))
	for i := range dist {
		dist[i] = -1
	}
	dist[root] = 0
	parent[root] = -1

	smallest := -1
	queue := []int{root}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		//every cycle closed from here on is longer than 2*dist[u]+1
		bound := 2*dist[u] + 1
		if (smallest != -1 && bound >= smallest) || (limit != -1 && bound >= limit) {
			break
		}

		for _, w := range adjacent[u] {
			if w == parent[u] {
				continue
			}
			if dist[w] == -1 {
				dist[w] = dist[u] + 1
				parent[w] = u
				queue = append(queue, w)
				continue
			}
			length := dist[u] + dist[w] + 1
			if smallest == -1 || length < smallest {
				smallest = length
			}
		}
	}

	if limit != -1 && smallest >= limit {
		return -1
	}
	return smallest
}
