package Mesh

import (
	"math"
	"sort"
)

// 三维网格类型与可制造性相关的派生属性计算

type Vertex struct {
	X, Y, Z float64
}

// Face 顶点下标三元组，逆时针为外法向
type Face [3]int

// MeshSolid 按顶点+三角面索引表示的实体网格
type MeshSolid struct {
	Vertices []Vertex
	Faces    []Face
}

// Translate 平移全部顶点
func (m *MeshSolid) Translate(dx, dy, dz float64) {
	for i := range m.Vertices {
		m.Vertices[i].X += dx
		m.Vertices[i].Y += dy
		m.Vertices[i].Z += dz
	}
}

// Append 拼接另一网格（顶点下标整体偏移）
func (m *MeshSolid) Append(other *MeshSolid) {
	offset := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, f := range other.Faces {
		m.Faces = append(m.Faces, Face{f[0] + offset, f[1] + offset, f[2] + offset})
	}
}

// Bounds 轴对齐包围盒
func (m *MeshSolid) Bounds() (min, max Vertex) {
	min = Vertex{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = Vertex{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Vertices {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}
	return min, max
}

// BoundingRadius 顶点到Z轴的最大水平距离
func (m *MeshSolid) BoundingRadius() float64 {
	var r float64
	for _, v := range m.Vertices {
		d := math.Hypot(v.X, v.Y)
		if d > r {
			r = d
		}
	}
	return r
}

// Volume 散度定理求体积（取绝对值），要求面片方向一致
func (m *MeshSolid) Volume() float64 {
	return math.Abs(m.signedVolume())
}

func (m *MeshSolid) signedVolume() float64 {
	var total float64
	for _, f := range m.Faces {
		a := m.Vertices[f[0]]
		b := m.Vertices[f[1]]
		c := m.Vertices[f[2]]
		total += a.X*(b.Y*c.Z-b.Z*c.Y) - a.Y*(b.X*c.Z-b.Z*c.X) + a.Z*(b.X*c.Y-b.Y*c.X)
	}
	return total / 6.0
}

type edgeKey struct {
	a, b int
}

func undirected(a, b int) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// IsWatertight 水密判定：每条无向边恰好被两个面共享
func (m *MeshSolid) IsWatertight() bool {
	if len(m.Faces) == 0 {
		return false
	}
	counts := make(map[edgeKey]int, len(m.Faces)*3/2)
	for _, f := range m.Faces {
		counts[undirected(f[0], f[1])]++
		counts[undirected(f[1], f[2])]++
		counts[undirected(f[2], f[0])]++
	}
	for _, c := range counts {
		if c != 2 {
			return false
		}
	}
	return true
}

// FixNormals 统一面片绕向：
// 按共享边传播方向一致性，随后对有向体积为负的连通片整体翻转
func (m *MeshSolid) FixNormals() {
	if len(m.Faces) == 0 {
		return
	}
	// 无向边 -> 相邻面
	adj := make(map[edgeKey][]int, len(m.Faces)*3/2)
	for fi, f := range m.Faces {
		adj[undirected(f[0], f[1])] = append(adj[undirected(f[0], f[1])], fi)
		adj[undirected(f[1], f[2])] = append(adj[undirected(f[1], f[2])], fi)
		adj[undirected(f[2], f[0])] = append(adj[undirected(f[2], f[0])], fi)
	}

	visited := make([]bool, len(m.Faces))
	for start := range m.Faces {
		if visited[start] {
			continue
		}
		component := []int{start}
		visited[start] = true
		queue := []int{start}
		for len(queue) > 0 {
			fi := queue[0]
			queue = queue[1:]
			f := m.Faces[fi]
			edges := [3][2]int{{f[0], f[1]}, {f[1], f[2]}, {f[2], f[0]}}
			for _, e := range edges {
				for _, ni := range adj[undirected(e[0], e[1])] {
					if ni == fi || visited[ni] {
						continue
					}
					// 一致绕向下，共享边在相邻面中方向应相反
					if hasDirectedEdge(m.Faces[ni], e[0], e[1]) {
						m.Faces[ni][1], m.Faces[ni][2] = m.Faces[ni][2], m.Faces[ni][1]
					}
					visited[ni] = true
					component = append(component, ni)
					queue = append(queue, ni)
				}
			}
		}

		// 连通片整体朝向：外法向有向体积应为正
		var vol float64
		for _, fi := range component {
			f := m.Faces[fi]
			a := m.Vertices[f[0]]
			b := m.Vertices[f[1]]
			c := m.Vertices[f[2]]
			vol += a.X*(b.Y*c.Z-b.Z*c.Y) - a.Y*(b.X*c.Z-b.Z*c.X) + a.Z*(b.X*c.Y-b.Y*c.X)
		}
		if vol < 0 {
			for _, fi := range component {
				m.Faces[fi][1], m.Faces[fi][2] = m.Faces[fi][2], m.Faces[fi][1]
			}
		}
	}
}

func hasDirectedEdge(f Face, a, b int) bool {
	return (f[0] == a && f[1] == b) || (f[1] == a && f[2] == b) || (f[2] == a && f[0] == b)
}

// FillHoles 尽力封闭边界环：收集只被一个面使用的有向边，
// 串成闭环后扇形补面。失败的环保持原样，不视为致命错误
func (m *MeshSolid) FillHoles() {
	directed := make(map[[2]int]bool, len(m.Faces)*3)
	for _, f := range m.Faces {
		directed[[2]int{f[0], f[1]}] = true
		directed[[2]int{f[1], f[2]}] = true
		directed[[2]int{f[2], f[0]}] = true
	}
	// 边界有向边：反向边不存在
	next := make(map[int]int)
	for e := range directed {
		if !directed[[2]int{e[1], e[0]}] {
			next[e[0]] = e[1]
		}
	}
	starts := make([]int, 0, len(next))
	for v := range next {
		starts = append(starts, v)
	}
	sort.Ints(starts)
	used := make(map[int]bool)
	for _, start := range starts {
		if used[start] {
			continue
		}
		loop := []int{start}
		used[start] = true
		cur := next[start]
		ok := false
		for steps := 0; steps < len(next)+1; steps++ {
			if cur == start {
				ok = true
				break
			}
			if used[cur] {
				break
			}
			loop = append(loop, cur)
			used[cur] = true
			cur = next[cur]
		}
		if !ok || len(loop) < 3 {
			continue
		}
		// 补面绕向与边界方向相反
		for i := 1; i < len(loop)-1; i++ {
			m.Faces = append(m.Faces, Face{loop[0], loop[i+1], loop[i]})
		}
	}
}
