package Mesh

import (
	"errors"
	"log"
	"math"

	"github.com/GrainArc/MandalaRelief/Mandala"
	"github.com/paulmach/orb"
)

// 浮雕挤出：三级降级策略
// 1. 带倒角挤出（首选）
// 2. 直壁挤出
// 3. 圆盘兜底，保证导出管线永远拿到几何体

var errExtrude = errors.New("无有效多边形可挤出")

// ChamferInsetRatio 倒角水平内收与垂直高度之比，约60°坡面
const ChamferInsetRatio = 0.5

// ExtrudeWithChamfer 区域挤出为带顶部倒角的实体网格。
// 倒角参数非法（<=0或>=总高）时退化为直壁挤出；任何一级失败都降级而不报错
func ExtrudeWithChamfer(region orb.MultiPolygon, height, chamferHeight float64) *MeshSolid {
	if chamferHeight <= 0 || chamferHeight >= height {
		return extrudeOrDisc(region, height)
	}

	out := &MeshSolid{}
	parts := 0
	for _, poly := range region {
		if len(poly) == 0 || Mandala.Area(orb.MultiPolygon{poly}) < 1e-9 {
			continue
		}
		m, err := chamferPolygon(poly, height, chamferHeight)
		if err != nil {
			log.Println("警告：倒角挤出失败，该部分退化为直壁挤出：", err)
			m, err = extrudePolygon(poly, height)
		}
		if err != nil {
			log.Println("警告：多边形部分挤出失败，跳过：", err)
			continue
		}
		out.Append(m)
		parts++
	}
	if parts == 0 {
		return extrudeOrDisc(region, height)
	}

	if !out.IsWatertight() {
		// 尽力修复，残留非水密不视为致命
		out.FillHoles()
		out.FixNormals()
	}
	return out
}

// extrudeOrDisc 直壁挤出，彻底失败时返回名义半径圆盘
func extrudeOrDisc(region orb.MultiPolygon, height float64) *MeshSolid {
	m, err := ExtrudePlain(region, height)
	if err == nil {
		return m
	}
	log.Println("警告：直壁挤出失败，退化为圆盘兜底：", err)
	radius := nominalRadius(region)
	return FallbackDisc(radius, height)
}

// ExtrudePlain 直壁挤出：侧壁+耳切顶底盖
func ExtrudePlain(region orb.MultiPolygon, height float64) (*MeshSolid, error) {
	out := &MeshSolid{}
	parts := 0
	for _, poly := range region {
		if len(poly) == 0 || Mandala.Area(orb.MultiPolygon{poly}) < 1e-9 {
			continue
		}
		m, err := extrudePolygon(poly, height)
		if err != nil {
			log.Println("警告：多边形部分挤出失败，跳过：", err)
			continue
		}
		out.Append(m)
		parts++
	}
	if parts == 0 {
		return nil, errExtrude
	}
	if !out.IsWatertight() {
		// 尽力修复，残留非水密不视为致命
		out.FillHoles()
		out.FixNormals()
	}
	return out, nil
}

// extrudePolygon 单多边形直壁挤出；剖分失败时退化为仅外环的扇形剖分
func extrudePolygon(poly orb.Polygon, height float64) (*MeshSolid, error) {
	poly = Mandala.OrientPolygon(poly)
	rings := validRings(poly)
	if len(rings) == 0 {
		return nil, errExtrude
	}

	caps, err := TriangulateWithHoles(rings)
	if err != nil {
		log.Println("警告：耳切剖分失败，退化为外环扇形剖分")
		rings = orb.Polygon{rings[0]}
		caps = fanTriangulate(Mandala.OpenRing(rings[0]))
	}
	return buildPrism(rings, rings, caps, 0, height, height), nil
}

// chamferPolygon 带倒角挤出：下段直壁到height-chamfer，上段锥面收拢到内缩轮廓
func chamferPolygon(poly orb.Polygon, height, chamferHeight float64) (*MeshSolid, error) {
	poly = Mandala.OrientPolygon(poly)
	rings := validRings(poly)
	if len(rings) == 0 {
		return nil, errExtrude
	}

	inset := chamferHeight * ChamferInsetRatio
	topRings, err := insetRings(rings, inset)
	if err != nil {
		return nil, err
	}
	// 内缩后面积不足原面积一成，倒角坡面过陡，放弃
	origArea := Mandala.Area(orb.MultiPolygon{rings})
	topArea := Mandala.Area(orb.MultiPolygon{topRings})
	if topArea < origArea*0.1 {
		return nil, errors.New("倒角内缩过大")
	}

	caps, err := TriangulateWithHoles(rings)
	if err != nil {
		return nil, err
	}
	return buildPrism(rings, topRings, caps, 0, height-chamferHeight, height), nil
}

// buildPrism 组装棱柱网格：底面z=z0，直壁到zMid，锥面到zTop（顶面环为topRings）。
// 底/中/顶三层共用顶点布局，顶底盖复用同一份剖分下标，结构上保证水密
func buildPrism(bottomRings, topRings orb.Polygon, caps []Face, z0, zMid, zTop float64) *MeshSolid {
	m := &MeshSolid{}
	total := 0
	for _, ring := range bottomRings {
		total += len(Mandala.OpenRing(ring))
	}

	// zMid落在(z0,zTop)之间时插入中层，分出直壁段与锥面段
	hasMid := zMid > z0 && zMid < zTop

	// 底层顶点
	for _, ring := range bottomRings {
		for _, pt := range Mandala.OpenRing(ring) {
			m.Vertices = append(m.Vertices, Vertex{pt[0], pt[1], z0})
		}
	}
	midBase := total
	if hasMid {
		// 中层（直壁顶端，XY与底层一致）
		for _, ring := range bottomRings {
			for _, pt := range Mandala.OpenRing(ring) {
				m.Vertices = append(m.Vertices, Vertex{pt[0], pt[1], zMid})
			}
		}
	}
	topBase := len(m.Vertices)
	for _, ring := range topRings {
		for _, pt := range Mandala.OpenRing(ring) {
			m.Vertices = append(m.Vertices, Vertex{pt[0], pt[1], zTop})
		}
	}

	// 侧壁
	offset := 0
	for _, ring := range bottomRings {
		n := len(Mandala.OpenRing(ring))
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			if hasMid {
				// 底->中直壁
				m.Faces = append(m.Faces,
					Face{offset + i, offset + j, midBase + offset + j},
					Face{offset + i, midBase + offset + j, midBase + offset + i})
				// 中->顶锥面
				m.Faces = append(m.Faces,
					Face{midBase + offset + i, midBase + offset + j, topBase + offset + j},
					Face{midBase + offset + i, topBase + offset + j, topBase + offset + i})
			} else {
				m.Faces = append(m.Faces,
					Face{offset + i, offset + j, topBase + offset + j},
					Face{offset + i, topBase + offset + j, topBase + offset + i})
			}
		}
		offset += n
	}

	// 顶底盖：底盖翻转朝下，顶盖沿用剖分绕向朝上
	for _, f := range caps {
		m.Faces = append(m.Faces, Face{f[0], f[2], f[1]})
		m.Faces = append(m.Faces, Face{topBase + f[0], topBase + f[1], topBase + f[2]})
	}
	return m
}

// insetRings 逐顶点沿角平分线向材料内侧平移（外环收缩、孔洞扩张），
// 环拓扑保持不变。任一环面积符号翻转即判定失败
func insetRings(rings orb.Polygon, inset float64) (orb.Polygon, error) {
	out := make(orb.Polygon, 0, len(rings))
	for ri, ring := range rings {
		open := Mandala.OpenRing(ring)
		n := len(open)
		origArea := Mandala.SignedArea(ring)
		moved := make(orb.Ring, 0, n+1)
		for i := 0; i < n; i++ {
			p := open[i]
			prev := open[(i-1+n)%n]
			next := open[(i+1)%n]

			d1x, d1y := normalize(p[0]-prev[0], p[1]-prev[1])
			d2x, d2y := normalize(next[0]-p[0], next[1]-p[1])
			// 材料位于行进方向左侧
			n1x, n1y := -d1y, d1x
			n2x, n2y := -d2y, d2x
			ux, uy := n1x+n2x, n1y+n2y
			l := math.Hypot(ux, uy)
			if l < 1e-9 {
				ux, uy = n1x, n1y
			} else {
				ux, uy = ux/l, uy/l
			}
			cosPhi := ux*n1x + uy*n1y
			if cosPhi < 0.25 {
				cosPhi = 0.25 // 尖角斜接限制
			}
			move := inset / cosPhi
			moved = append(moved, orb.Point{p[0] + ux*move, p[1] + uy*move})
		}
		moved = append(moved, moved[0])

		newArea := Mandala.SignedArea(moved)
		if origArea*newArea <= 0 {
			return nil, errors.New("倒角内缩导致环翻转")
		}
		if ri == 0 && math.Abs(newArea) >= math.Abs(origArea) {
			return nil, errors.New("倒角内缩方向异常")
		}
		out = append(out, moved)
	}
	return out, nil
}

// validRings 过滤退化环，外环必须有效
func validRings(poly orb.Polygon) orb.Polygon {
	if len(poly) == 0 || len(Mandala.OpenRing(poly[0])) < 3 {
		return nil
	}
	out := orb.Polygon{poly[0]}
	for _, hole := range poly[1:] {
		if len(Mandala.OpenRing(hole)) >= 3 {
			out = append(out, hole)
		}
	}
	return out
}

// fanTriangulate 外环扇形剖分（孔洞被忽略的最后手段）
func fanTriangulate(open orb.Ring) []Face {
	var faces []Face
	for i := 1; i < len(open)-1; i++ {
		faces = append(faces, Face{0, i, i + 1})
	}
	return faces
}

// nominalRadius 区域的名义半径，空区域取1mm
func nominalRadius(region orb.MultiPolygon) float64 {
	var r float64
	for _, poly := range region {
		for _, ring := range poly {
			for _, pt := range ring {
				d := math.Hypot(pt[0], pt[1])
				if d > r {
					r = d
				}
			}
		}
	}
	if r <= 0 {
		r = 1.0
	}
	return r
}

func normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l < 1e-12 {
		return 0, 0
	}
	return x / l, y / l
}

// Cylinder 以原点为中心的圆柱网格，z范围[-height/2, height/2]
func Cylinder(radius, height float64, sections int) *MeshSolid {
	m := &MeshSolid{}
	h := height / 2
	m.Vertices = append(m.Vertices, Vertex{0, 0, -h}, Vertex{0, 0, h})
	for i := 0; i < sections; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sections)
		x := radius * math.Cos(angle)
		y := radius * math.Sin(angle)
		m.Vertices = append(m.Vertices, Vertex{x, y, -h})
	}
	for i := 0; i < sections; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sections)
		x := radius * math.Cos(angle)
		y := radius * math.Sin(angle)
		m.Vertices = append(m.Vertices, Vertex{x, y, h})
	}
	bot := 2
	top := 2 + sections
	for i := 0; i < sections; i++ {
		j := (i + 1) % sections
		m.Faces = append(m.Faces,
			Face{0, bot + j, bot + i},          // 底盖朝下
			Face{1, top + i, top + j},          // 顶盖朝上
			Face{bot + i, bot + j, top + j},    // 侧壁
			Face{bot + i, top + j, top + i})
	}
	return m
}

// FallbackDisc 兜底圆盘，z范围[0, height]
func FallbackDisc(radius, height float64) *MeshSolid {
	m := Cylinder(radius, height, 128)
	m.Translate(0, 0, height/2)
	return m
}
