package Mesh

import (
	"errors"
	"math"
	"sort"

	"github.com/GrainArc/MandalaRelief/Mandala"
	"github.com/paulmach/orb"
)

// 带孔多边形耳切三角剖分，环形链表实现。
// 孔洞按最左顶点排序后经互见桥接边并入外环；耳切一轮无进展时
// 逐级脱困：先清理退化点，再消除桥接造成的局部自交，最后把轮廓
// 二分各自递归，保证有效覆盖不被丢弃。
// 输出下标对应各环顶点（去闭合点）依次拼接后的序号，供挤出网格共享顶点

var errTriangulate = errors.New("三角剖分失败")

type earNode struct {
	i       int // 顶点布局全局下标
	x, y    float64
	prev    *earNode
	next    *earNode
	steiner bool
}

// TriangulateWithHoles 剖分规范化多边形（外环逆时针、孔洞顺时针）
func TriangulateWithHoles(poly orb.Polygon) ([]Face, error) {
	if len(poly) == 0 {
		return nil, errTriangulate
	}
	outerPts := Mandala.OpenRing(poly[0])
	if len(outerPts) < 3 {
		return nil, errTriangulate
	}
	outer := linkedRing(outerPts, 0, true)
	if outer == nil || outer.next == outer.prev {
		return nil, errTriangulate
	}

	offset := len(outerPts)
	var holeLeft []*earNode
	for _, ring := range poly[1:] {
		open := Mandala.OpenRing(ring)
		if len(open) >= 3 {
			if list := linkedRing(open, offset, false); list != nil {
				if list == list.next {
					list.steiner = true
				}
				holeLeft = append(holeLeft, leftmostNode(list))
			}
		}
		offset += len(open)
	}
	// 自左向右逐孔桥接，保证先桥接的孔不挡住后续孔的视线
	sort.SliceStable(holeLeft, func(a, b int) bool { return holeLeft[a].x < holeLeft[b].x })
	for _, h := range holeLeft {
		outer = eliminateHole(h, outer)
	}

	var faces []Face
	clipEars(outer, &faces, 0)
	if len(faces) == 0 {
		return nil, errTriangulate
	}
	return faces, nil
}

// linkedRing 将开环点列构建为循环链表，按ccw要求统一走向
func linkedRing(pts []orb.Point, base int, ccw bool) *earNode {
	var area float64
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	var last *earNode
	if (area > 0) == ccw {
		for i := 0; i < n; i++ {
			last = insertNode(base+i, pts[i][0], pts[i][1], last)
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			last = insertNode(base+i, pts[i][0], pts[i][1], last)
		}
	}
	if last != nil && equalsNode(last, last.next) {
		removeNode(last)
		last = last.next
	}
	return last
}

func insertNode(i int, x, y float64, last *earNode) *earNode {
	p := &earNode{i: i, x: x, y: y}
	if last == nil {
		p.prev = p
		p.next = p
	} else {
		p.next = last.next
		p.prev = last
		last.next.prev = p
		last.next = p
	}
	return p
}

func removeNode(p *earNode) {
	p.next.prev = p.prev
	p.prev.next = p.next
}

// filterPoints 清理连续重复点与共线点（桥接切口两侧常见）
func filterPoints(start, end *earNode) *earNode {
	if start == nil {
		return nil
	}
	if end == nil {
		end = start
	}
	p := start
	for {
		again := false
		if !p.steiner && (equalsNode(p, p.next) || cross2(p.prev, p, p.next) == 0) {
			removeNode(p)
			p = p.prev
			end = p
			if p == p.next {
				break
			}
			again = true
		} else {
			p = p.next
		}
		if !again && p == end {
			break
		}
	}
	return end
}

// clipEars 主循环：逐耳裁剪，按pass逐级脱困后继续
func clipEars(ear *earNode, faces *[]Face, pass int) {
	if ear == nil {
		return
	}
	stop := ear
	for ear.prev != ear.next {
		prev := ear.prev
		next := ear.next
		if isEar(ear) {
			*faces = append(*faces, Face{prev.i, ear.i, next.i})
			removeNode(ear)
			ear = next.next
			stop = next.next
			continue
		}
		ear = next
		if ear == stop {
			switch pass {
			case 0:
				clipEars(filterPoints(ear, nil), faces, 1)
			case 1:
				ear = cureLocalIntersections(filterPoints(ear, nil), faces)
				clipEars(ear, faces, 2)
			default:
				splitAndClip(ear, faces)
			}
			return
		}
	}
}

// isEar 耳朵判定：凸角且三角形内不含其他凹顶点
func isEar(ear *earNode) bool {
	a, b, c := ear.prev, ear, ear.next
	if cross2(a, b, c) <= 0 {
		return false
	}
	p := ear.next.next
	for p != ear.prev {
		if pointInEarTri(a, b, c, p) && cross2(p.prev, p, p.next) <= 0 {
			return false
		}
		p = p.next
	}
	return true
}

// cureLocalIntersections 消除相邻边局部自交：交叉的一对边直接合为一个三角形
func cureLocalIntersections(start *earNode, faces *[]Face) *earNode {
	if start == nil {
		return nil
	}
	p := start
	for {
		a := p.prev
		b := p.next.next
		if !equalsNode(a, b) && segmentsCross(a, p, p.next, b) &&
			locallyInside(a, b) && locallyInside(b, a) {
			*faces = append(*faces, Face{a.i, p.i, b.i})
			removeNode(p)
			removeNode(p.next)
			p = b
			start = b
		}
		p = p.next
		if p == start {
			break
		}
	}
	return filterPoints(p, nil)
}

// splitAndClip 找一条内部对角线把轮廓切成两半，各自从头裁剪
func splitAndClip(start *earNode, faces *[]Face) {
	a := start
	for {
		b := a.next.next
		for b != a.prev {
			if a.i != b.i && validDiagonal(a, b) {
				c := splitRing(a, b)
				a = filterPoints(a, a.next)
				c = filterPoints(c, c.next)
				clipEars(a, faces, 0)
				clipEars(c, faces, 0)
				return
			}
			b = b.next
		}
		a = a.next
		if a == start {
			return
		}
	}
}

// eliminateHole 将单个孔洞经桥接边并入外环
func eliminateHole(hole, outer *earNode) *earNode {
	bridge := findHoleBridge(hole, outer)
	if bridge == nil {
		return outer
	}
	mirror := splitRing(bridge, hole)
	filterPoints(mirror, mirror.next)
	return filterPoints(bridge, bridge.next)
}

// findHoleBridge 从孔洞最左顶点向-x方向射线，找外环上互见的桥接点：
// 先取被射线穿过的最近边上x较小的端点为候选，再在射线三角形内
// 寻找角度更优的凹顶点替代，避免桥接边穿越其他几何
func findHoleBridge(hole, outer *earNode) *earNode {
	p := outer
	hx, hy := hole.x, hole.y
	qx := math.Inf(-1)
	var m *earNode
	for {
		if hy <= p.y && hy >= p.next.y && p.next.y != p.y {
			x := p.x + (hy-p.y)*(p.next.x-p.x)/(p.next.y-p.y)
			if x <= hx && x > qx {
				qx = x
				if p.x < p.next.x {
					m = p
				} else {
					m = p.next
				}
				if x == hx {
					// 射线正好擦到外环顶点
					return m
				}
			}
		}
		p = p.next
		if p == outer {
			break
		}
	}
	if m == nil {
		return nil
	}

	stop := m
	mx, my := m.x, m.y
	tanMin := math.Inf(1)
	p = m
	for {
		if hx >= p.x && p.x >= mx && hx != p.x &&
			rayTriContains(hx, hy, mx, my, qx, p) {
			tan := math.Abs(hy-p.y) / (hx - p.x)
			if locallyInside(p, hole) &&
				(tan < tanMin || (tan == tanMin && (p.x > m.x || (p.x == m.x && sectorContains(m, p))))) {
				m = p
				tanMin = tan
			}
		}
		p = p.next
		if p == stop {
			break
		}
	}
	return m
}

// rayTriContains 候选点是否落在孔洞顶点、射线交点、当前桥接点围成的三角形内
func rayTriContains(hx, hy, mx, my, qx float64, p *earNode) bool {
	ax, cx := qx, hx
	if hy < my {
		ax, cx = hx, qx
	}
	return pointInTriXY(ax, hy, mx, my, cx, hy, p.x, p.y)
}

// splitRing 用对角线a-b把轮廓切成两个环，返回新环中b的副本
func splitRing(a, b *earNode) *earNode {
	a2 := &earNode{i: a.i, x: a.x, y: a.y}
	b2 := &earNode{i: b.i, x: b.x, y: b.y}
	an := a.next
	bp := b.prev

	a.next = b
	b.prev = a
	a2.next = an
	an.prev = a2
	b2.next = a2
	a2.prev = b2
	bp.next = b2
	b2.prev = bp
	return b2
}

// validDiagonal 对角线a-b完全在轮廓内部且不与任何边相交
func validDiagonal(a, b *earNode) bool {
	if a.next.i == b.i || a.prev.i == b.i || intersectsRing(a, b) {
		return false
	}
	inside := locallyInside(a, b) && locallyInside(b, a) && middleInside(a, b) &&
		(cross2(a.prev, a, b) != 0 || cross2(a, b, b.next) != 0)
	zeroLen := equalsNode(a, b) && cross2(a.prev, a, a.next) < 0 && cross2(b.prev, b, b.next) < 0
	return inside || zeroLen
}

// sectorContains 桥接点m处的内角扇区完全包含候选点p的扇区（同角度时的决胜）
func sectorContains(m, p *earNode) bool {
	return cross2(m.prev, m, p.prev) > 0 && cross2(p.next, m, m.next) > 0
}

// locallyInside 线段a-b在顶点a处指向轮廓内部
func locallyInside(a, b *earNode) bool {
	if cross2(a.prev, a, a.next) > 0 {
		return cross2(a, b, a.next) <= 0 && cross2(a, a.prev, b) <= 0
	}
	return cross2(a, b, a.prev) > 0 || cross2(a, a.next, b) > 0
}

// middleInside 对角线中点在轮廓内部（射线法）
func middleInside(a, b *earNode) bool {
	p := a
	inside := false
	px := (a.x + b.x) / 2
	py := (a.y + b.y) / 2
	for {
		if (p.y > py) != (p.next.y > py) && p.next.y != p.y &&
			px < (p.next.x-p.x)*(py-p.y)/(p.next.y-p.y)+p.x {
			inside = !inside
		}
		p = p.next
		if p == a {
			break
		}
	}
	return inside
}

// intersectsRing 线段a-b与轮廓上任一不相邻边相交
func intersectsRing(a, b *earNode) bool {
	p := a
	for {
		if p.i != a.i && p.next.i != a.i && p.i != b.i && p.next.i != b.i &&
			segmentsCross(p, p.next, a, b) {
			return true
		}
		p = p.next
		if p == a {
			break
		}
	}
	return false
}

// segmentsCross 线段p1-q1与p2-q2相交判定，含共线重叠
func segmentsCross(p1, q1, p2, q2 *earNode) bool {
	o1 := signOf(cross2(p1, q1, p2))
	o2 := signOf(cross2(p1, q1, q2))
	o3 := signOf(cross2(p2, q2, p1))
	o4 := signOf(cross2(p2, q2, q1))
	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}

func onSegment(p, q, r *earNode) bool {
	return q.x <= math.Max(p.x, r.x) && q.x >= math.Min(p.x, r.x) &&
		q.y <= math.Max(p.y, r.y) && q.y >= math.Min(p.y, r.y)
}

func signOf(v float64) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func leftmostNode(start *earNode) *earNode {
	p := start
	best := start
	for {
		if p.x < best.x || (p.x == best.x && p.y < best.y) {
			best = p
		}
		p = p.next
		if p == start {
			break
		}
	}
	return best
}

func cross2(a, b, c *earNode) float64 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

func equalsNode(a, b *earNode) bool {
	return a.x == b.x && a.y == b.y
}

// pointInEarTri 含边界的三角形内点判定（a,b,c逆时针）
func pointInEarTri(a, b, c, p *earNode) bool {
	return pointInTriXY(a.x, a.y, b.x, b.y, c.x, c.y, p.x, p.y)
}

func pointInTriXY(ax, ay, bx, by, cx, cy, px, py float64) bool {
	return (cx-px)*(ay-py)-(ax-px)*(cy-py) >= 0 &&
		(ax-px)*(by-py)-(bx-px)*(ay-py) >= 0 &&
		(bx-px)*(cy-py)-(cx-px)*(by-py) >= 0
}
