package resolution

// unionFind is an arena-indexed disjoint set over dense candidate indices.
// Merging always keeps the smaller root, so component identity is a pure
// function of which pairs were united, not of the order they arrived in.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]] // path halving
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}

// components groups indices by root, each group ascending, groups ordered by
// their smallest member.
func (u *unionFind) components() [][]int {
	groups := make(map[int][]int)
	for i := range u.parent {
		root := u.find(i)
		groups[root] = append(groups[root], i)
	}

	out := make([][]int, 0, len(groups))
	for i := range u.parent {
		if group, ok := groups[i]; ok && group[0] == i {
			out = append(out, group)
		}
	}
	return out
}
