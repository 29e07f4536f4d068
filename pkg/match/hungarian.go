package match

import "math"

// solveAssignment computes a minimum-cost complete assignment of rows to
// columns for a rectangular cost matrix and returns, per row, the assigned
// column (-1 only when there are more rows than columns and the row found no
// column). The algorithm is the O(n^2·m) potential-based Hungarian method; it
// is total over any finite rectangular matrix and fully deterministic: equal
// alternatives resolve to the lowest column index, and rows are processed in
// input order.
func solveAssignment(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	m := len(cost[0])
	if m == 0 {
		out := make([]int, n)
		for i := range out {
			out[i] = -1
		}
		return out
	}

	// The core routine requires rows <= columns; transpose when needed.
	if n > m {
		transposed := make([][]float64, m)
		for j := 0; j < m; j++ {
			transposed[j] = make([]float64, n)
			for i := 0; i < n; i++ {
				transposed[j][i] = cost[i][j]
			}
		}
		byCol := assignRows(transposed, m, n)
		out := make([]int, n)
		for i := range out {
			out[i] = -1
		}
		for j, i := range byCol {
			if i >= 0 {
				out[i] = j
			}
		}
		return out
	}

	return assignRows(cost, n, m)
}

// assignRows runs the Hungarian method proper for n <= m, returning the
// assigned column per row. Indices inside are 1-based per the classical
// formulation; column 0 is the virtual start column.
func assignRows(cost [][]float64, n, m int) []int {
	u := make([]float64, n+1)
	v := make([]float64, m+1)
	rowForCol := make([]int, m+1)
	way := make([]int, m+1)

	for i := 1; i <= n; i++ {
		rowForCol[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		for {
			used[j0] = true
			i0 := rowForCol[j0]
			delta := math.Inf(1)
			j1 := 0

			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= m; j++ {
				if used[j] {
					u[rowForCol[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if rowForCol[j0] == 0 {
				break
			}
		}

		// Augment along the found path.
		for j0 != 0 {
			j1 := way[j0]
			rowForCol[j0] = rowForCol[j1]
			j0 = j1
		}
	}

	out := make([]int, n)
	for i := range out {
		out[i] = -1
	}
	for j := 1; j <= m; j++ {
		if rowForCol[j] != 0 {
			out[rowForCol[j]-1] = j - 1
		}
	}
	return out
}
