package Mandala

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleArea(t *testing.T) {
	circle := orb.MultiPolygon{Circle(0, 0, 5, 32)}
	assert.InEpsilon(t, math.Pi*25, Area(circle), 0.005)
}

func TestCircleRingClosed(t *testing.T) {
	circle := Circle(1, 2, 3, 16)
	require.Len(t, circle, 1)
	ring := circle[0]
	assert.Equal(t, ring[0], ring[len(ring)-1])
	assert.Len(t, ring, 16*4+1)
}

func TestUnionOverlappingCircles(t *testing.T) {
	a := orb.MultiPolygon{Circle(0, 0, 1, 16)}
	b := orb.MultiPolygon{Circle(0.5, 0, 1, 16)}
	u := Union(a, b)

	areaA := Area(a)
	areaU := Area(u)
	assert.Greater(t, areaU, areaA)
	assert.Less(t, areaU, areaA*2)
	assert.Len(t, u, 1, "相交圆并集应为单一多边形")
}

func TestIntersectDisjoint(t *testing.T) {
	a := orb.MultiPolygon{Circle(0, 0, 1, 16)}
	b := orb.MultiPolygon{Circle(10, 0, 1, 16)}
	assert.True(t, IsEmpty(Intersect(a, b)))
}

func TestDifferenceMakesHole(t *testing.T) {
	outer := orb.MultiPolygon{Circle(0, 0, 5, 16)}
	inner := orb.MultiPolygon{Circle(0, 0, 2, 16)}
	d := Difference(outer, inner)

	require.Len(t, d, 1)
	require.Len(t, d[0], 2, "环形应包含一个孔洞")
	assert.InEpsilon(t, math.Pi*(25-4), Area(d), 0.01)
}

func TestAnnulusDegeneratesToDisc(t *testing.T) {
	solid := Annulus(0, 0, 3, 0, 16)
	assert.Len(t, solid, 1)

	ring := Annulus(0, 0, 3, 1, 16)
	assert.Len(t, ring, 2)
	assert.InEpsilon(t, math.Pi*(9-1), Area(orb.MultiPolygon{ring}), 0.01)
}

func TestCapsuleArea(t *testing.T) {
	c := orb.MultiPolygon{Capsule(0, 0, 4, 0, 1, 16)}
	// 矩形2rL加上两端半圆
	assert.InEpsilon(t, 2.0*4+math.Pi, Area(c), 0.01)
}

func TestCapsuleZeroLength(t *testing.T) {
	c := orb.MultiPolygon{Capsule(1, 1, 1, 1, 2, 16)}
	assert.InEpsilon(t, math.Pi*4, Area(c), 0.005)
}

func TestRepairPreservesValidRegion(t *testing.T) {
	u := Union(
		orb.MultiPolygon{Circle(0, 0, 2, 16)},
		orb.MultiPolygon{Circle(1, 0, 2, 16)},
	)
	r := Repair(u)
	assert.InDelta(t, Area(u), Area(r), 1e-6)
}

func TestOrientPolygon(t *testing.T) {
	// 故意全部顺时针
	p := orb.Polygon{
		orb.Ring{{0, 0}, {0, 4}, {4, 4}, {4, 0}, {0, 0}},
		orb.Ring{{1, 1}, {3, 1}, {3, 3}, {1, 3}, {1, 1}},
	}
	out := OrientPolygon(p)
	assert.Positive(t, SignedArea(out[0]), "外环应为逆时针")
	assert.Negative(t, SignedArea(out[1]), "孔洞应为顺时针")
}

func TestUnionAll(t *testing.T) {
	parts := []orb.MultiPolygon{
		{Circle(0, 0, 1, 16)},
		{Circle(5, 0, 1, 16)},
		{Circle(10, 0, 1, 16)},
	}
	u := UnionAll(parts)
	assert.Len(t, u, 3)
	assert.InEpsilon(t, 3*math.Pi, Area(u), 0.01)
}
