package Mesh

import (
	"fmt"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrainArc/MandalaRelief/Mandala"
)

// 按剖分输入的顶点布局（各环去尾点后顺序拼接）重建平面坐标
func flattenRings(poly orb.Polygon) []orb.Point {
	var pts []orb.Point
	for _, ring := range poly {
		pts = append(pts, Mandala.OpenRing(ring)...)
	}
	return pts
}

func facesArea(faces []Face, pts []orb.Point) float64 {
	var total float64
	for _, f := range faces {
		a, b, c := pts[f[0]], pts[f[1]], pts[f[2]]
		total += ((b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])) / 2
	}
	return total
}

func TestTriangulateSquare(t *testing.T) {
	square := orb.Polygon{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
	}
	faces, err := TriangulateWithHoles(square)
	require.NoError(t, err)
	assert.Len(t, faces, 2)
	assert.InDelta(t, 1.0, facesArea(faces, flattenRings(square)), 1e-9)
}

func TestTriangulateSquareWithHole(t *testing.T) {
	poly := orb.Polygon{
		{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}},
		{{-0.5, -0.5}, {-0.5, 0.5}, {0.5, 0.5}, {0.5, -0.5}, {-0.5, -0.5}},
	}
	faces, err := TriangulateWithHoles(poly)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, facesArea(faces, flattenRings(poly)), 1e-9)
	for _, f := range faces {
		pts := flattenRings(poly)
		a, b, c := pts[f[0]], pts[f[1]], pts[f[2]]
		cross := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
		assert.Positive(t, cross, "剖分面片必须保持逆时针")
	}
}

func TestTriangulateAnnulus(t *testing.T) {
	poly := Mandala.OrientPolygon(Mandala.Annulus(0, 0, 5, 2, 16))
	faces, err := TriangulateWithHoles(poly)
	require.NoError(t, err)
	assert.InEpsilon(t, Mandala.Area(orb.MultiPolygon{poly}), facesArea(faces, flattenRings(poly)), 1e-6)
}

func TestTriangulateCircle(t *testing.T) {
	poly := Mandala.Circle(2, -3, 4, 24)
	faces, err := TriangulateWithHoles(poly)
	require.NoError(t, err)
	// n个顶点的凸多边形恰好n-2个三角形
	assert.Len(t, faces, 24*4-2)
}

func TestTriangulateDegenerate(t *testing.T) {
	_, err := TriangulateWithHoles(orb.Polygon{})
	assert.Error(t, err)

	_, err = TriangulateWithHoles(orb.Polygon{{{0, 0}, {1, 0}, {0, 0}}})
	assert.Error(t, err)
}

func TestTriangulateManyHoles(t *testing.T) {
	// 圆盘上两圈点孔加中心孔，共17个孔洞
	poly := orb.Polygon{Mandala.Circle(0, 0, 5, 16)[0]}
	for i := 0; i < 8; i++ {
		angle := 2 * math.Pi * float64(i) / 8
		poly = append(poly, Mandala.Circle(3*math.Cos(angle), 3*math.Sin(angle), 0.4, 8)[0])
		poly = append(poly, Mandala.Circle(1.5*math.Cos(angle), 1.5*math.Sin(angle), 0.3, 8)[0])
	}
	poly = append(poly, Mandala.Circle(0, 0, 0.5, 8)[0])
	poly = Mandala.OrientPolygon(poly)

	faces, err := TriangulateWithHoles(poly)
	require.NoError(t, err)
	expected := Mandala.Area(orb.MultiPolygon{poly})
	assert.InEpsilon(t, expected, facesArea(faces, flattenRings(poly)), 1e-6)
}

func TestTriangulateGeneratedParts(t *testing.T) {
	// 合成器的真实输出：大量孔洞与桥接切口都必须剖分成功
	for i := 0; i < 8; i++ {
		seed := fmt.Sprintf("seed-%d", i)
		region := Mandala.Generate(seed, 12)
		require.False(t, Mandala.IsEmpty(region), "seed=%s", seed)

		for pi, poly := range region {
			rings := validRings(Mandala.OrientPolygon(poly))
			if len(rings) == 0 || Mandala.Area(orb.MultiPolygon{rings}) < 1e-9 {
				continue
			}
			faces, err := TriangulateWithHoles(rings)
			require.NoError(t, err, "seed=%s part=%d rings=%d", seed, pi, len(rings))
			expected := Mandala.Area(orb.MultiPolygon{rings})
			got := facesArea(faces, flattenRings(rings))
			assert.InEpsilon(t, expected, got, 1e-6, "seed=%s part=%d", seed, pi)
		}
	}
}

func TestTriangulateConcave(t *testing.T) {
	// L形
	poly := orb.Polygon{
		{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}, {0, 0}},
	}
	faces, err := TriangulateWithHoles(poly)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, facesArea(faces, flattenRings(poly)), 1e-9)
}
