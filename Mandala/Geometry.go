package Mandala

import (
	"math"
	"sort"

	polyclip "github.com/ctessum/polyclip-go"
	"github.com/paulmach/orb"
)

// 几何运算底层封装：orb类型与polyclip裁剪内核之间的转换与布尔运算

// ToClip 将orb.MultiPolygon转换为polyclip.Polygon（环方向由裁剪内核自行处理）
func ToClip(mp orb.MultiPolygon) polyclip.Polygon {
	var out polyclip.Polygon
	for _, poly := range mp {
		for _, ring := range poly {
			pts := openRing(ring)
			if len(pts) < 3 {
				continue
			}
			contour := make(polyclip.Contour, 0, len(pts))
			for _, pt := range pts {
				contour = append(contour, polyclip.Point{X: pt[0], Y: pt[1]})
			}
			out = append(out, contour)
		}
	}
	return out
}

// FromClip 将polyclip结果重组为带孔洞结构的orb.MultiPolygon
// polyclip输出的轮廓不区分外环与孔洞，这里按包含深度分类：
// 偶数深度为外环，奇数深度为孔洞，孔洞挂接到面积最小的包含外环上
func FromClip(p polyclip.Polygon) orb.MultiPolygon {
	type contourInfo struct {
		ring  orb.Ring
		area  float64 // 绝对面积
		depth int
	}

	contours := make([]*contourInfo, 0, len(p))
	for _, c := range p {
		if len(c) < 3 {
			continue
		}
		ring := make(orb.Ring, 0, len(c)+1)
		for _, pt := range c {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		ring = append(ring, ring[0])
		area := math.Abs(signedArea(ring))
		if area < 1e-12 {
			continue
		}
		contours = append(contours, &contourInfo{ring: ring, area: area})
	}

	// 计算每个轮廓的嵌套深度（被多少个其他轮廓包含）
	for i, ci := range contours {
		probe := ci.ring[0]
		for j, cj := range contours {
			if i == j {
				continue
			}
			if cj.area > ci.area && pointInRing(probe, cj.ring) {
				ci.depth++
			}
		}
	}

	// 外环按面积从大到小排列，保证孔洞能找到直接父环
	exteriors := make([]*contourInfo, 0, len(contours))
	holes := make([]*contourInfo, 0)
	for _, ci := range contours {
		if ci.depth%2 == 0 {
			exteriors = append(exteriors, ci)
		} else {
			holes = append(holes, ci)
		}
	}
	sort.Slice(exteriors, func(a, b int) bool { return exteriors[a].area > exteriors[b].area })

	var out orb.MultiPolygon
	holeOwner := make(map[*contourInfo]int)
	for _, h := range holes {
		best := -1
		bestArea := math.Inf(1)
		for k, ex := range exteriors {
			if ex.area > h.area && ex.area < bestArea && pointInRing(h.ring[0], ex.ring) {
				best = k
				bestArea = ex.area
			}
		}
		if best >= 0 {
			holeOwner[h] = best
		}
	}
	for k, ex := range exteriors {
		poly := orb.Polygon{forceOrientation(ex.ring, true)}
		for _, h := range holes {
			if owner, ok := holeOwner[h]; ok && owner == k {
				poly = append(poly, forceOrientation(h.ring, false))
			}
		}
		out = append(out, poly)
	}
	return out
}

// Union 区域并集
func Union(a, b orb.MultiPolygon) orb.MultiPolygon {
	return FromClip(ToClip(a).Construct(polyclip.UNION, ToClip(b)))
}

// Intersect 区域交集
func Intersect(a, b orb.MultiPolygon) orb.MultiPolygon {
	return FromClip(ToClip(a).Construct(polyclip.INTERSECTION, ToClip(b)))
}

// Difference 区域差集
func Difference(a, b orb.MultiPolygon) orb.MultiPolygon {
	return FromClip(ToClip(a).Construct(polyclip.DIFFERENCE, ToClip(b)))
}

// Repair 修复自相交区域，等价于shapely的零距离buffer：
// 与扩大后的包围盒求交，强制裁剪内核完整扫描一遍并重建拓扑
func Repair(mp orb.MultiPolygon) orb.MultiPolygon {
	if len(mp) == 0 {
		return mp
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range mp {
		for _, ring := range poly {
			for _, pt := range ring {
				minX = math.Min(minX, pt[0])
				maxX = math.Max(maxX, pt[0])
				minY = math.Min(minY, pt[1])
				maxY = math.Max(maxY, pt[1])
			}
		}
	}
	pad := math.Max(maxX-minX, maxY-minY) + 1.0
	box := orb.MultiPolygon{orb.Polygon{orb.Ring{
		{minX - pad, minY - pad},
		{maxX + pad, minY - pad},
		{maxX + pad, maxY + pad},
		{minX - pad, maxY + pad},
		{minX - pad, minY - pad},
	}}}
	return Intersect(mp, box)
}

// UnionAll 多区域合并，分治折叠减少裁剪扫描次数
func UnionAll(parts []orb.MultiPolygon) orb.MultiPolygon {
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return parts[0]
	}
	mid := len(parts) / 2
	return Union(UnionAll(parts[:mid]), UnionAll(parts[mid:]))
}

// Circle 以quadSegs为四分之一圆细分数生成圆形区域（逆时针闭合环）
func Circle(cx, cy, r float64, quadSegs int) orb.Polygon {
	n := quadSegs * 4
	ring := make(orb.Ring, 0, n+1)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, orb.Point{cx + r*math.Cos(angle), cy + r*math.Sin(angle)})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// Annulus 圆环区域，内半径不大于零时退化为实心圆
func Annulus(cx, cy, rOuter, rInner float64, quadSegs int) orb.Polygon {
	outer := Circle(cx, cy, rOuter, quadSegs)
	if rInner <= 1e-9 {
		return outer
	}
	inner := Circle(cx, cy, rInner, quadSegs)
	hole := forceOrientation(inner[0], false)
	return orb.Polygon{outer[0], hole}
}

// Capsule 线段按半径r加粗成圆头长条（等价于shapely的round cap buffer）
func Capsule(x1, y1, x2, y2, r float64, quadSegs int) orb.Polygon {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		return Circle(x1, y1, r, quadSegs)
	}
	theta := math.Atan2(dy, dx)
	n := quadSegs * 2
	ring := make(orb.Ring, 0, 2*n+3)
	// 终点半圆：theta-90° -> theta+90°
	for i := 0; i <= n; i++ {
		a := theta - math.Pi/2 + math.Pi*float64(i)/float64(n)
		ring = append(ring, orb.Point{x2 + r*math.Cos(a), y2 + r*math.Sin(a)})
	}
	// 起点半圆：theta+90° -> theta+270°
	for i := 0; i <= n; i++ {
		a := theta + math.Pi/2 + math.Pi*float64(i)/float64(n)
		ring = append(ring, orb.Point{x1 + r*math.Cos(a), y1 + r*math.Sin(a)})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// Area 区域总面积（外环减去孔洞）
func Area(mp orb.MultiPolygon) float64 {
	var total float64
	for _, poly := range mp {
		for i, ring := range poly {
			a := math.Abs(signedArea(ring))
			if i == 0 {
				total += a
			} else {
				total -= a
			}
		}
	}
	return total
}

// IsEmpty 判断区域是否为空或面积退化
func IsEmpty(mp orb.MultiPolygon) bool {
	return len(mp) == 0 || Area(mp) < 1e-9
}

// signedArea 鞋带公式求有向面积，逆时针为正
func signedArea(ring orb.Ring) float64 {
	var sum float64
	n := len(ring)
	if n < 3 {
		return 0
	}
	for i := 0; i < n-1; i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	if ring[0] != ring[n-1] {
		sum += ring[n-1][0]*ring[0][1] - ring[0][0]*ring[n-1][1]
	}
	return sum / 2
}

// SignedArea 导出有向面积供网格构建使用
func SignedArea(ring orb.Ring) float64 {
	return signedArea(ring)
}

// forceOrientation 调整环方向，ccw为true时逆时针
func forceOrientation(ring orb.Ring, ccw bool) orb.Ring {
	if (signedArea(ring) > 0) == ccw {
		return ring
	}
	out := make(orb.Ring, len(ring))
	for i, pt := range ring {
		out[len(ring)-1-i] = pt
	}
	return out
}

// OpenRing 去掉闭合环末尾的重复点
func OpenRing(ring orb.Ring) orb.Ring {
	return openRing(ring)
}

// openRing 去掉闭合环末尾的重复点
func openRing(ring orb.Ring) orb.Ring {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}
	return ring
}

// pointInRing 射线法判断点是否在环内
func pointInRing(pt orb.Point, ring orb.Ring) bool {
	inside := false
	n := len(ring)
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > pt[1]) != (yj > pt[1]) &&
			pt[0] < (xj-xi)*(pt[1]-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// OrientPolygon 规范化多边形环方向：外环逆时针，孔洞顺时针
func OrientPolygon(poly orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, 0, len(poly))
	for i, ring := range poly {
		out = append(out, forceOrientation(ring, i == 0))
	}
	return out
}
