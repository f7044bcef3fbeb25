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

func squareRegion(side float64) orb.MultiPolygon {
	h := side / 2
	return orb.MultiPolygon{{
		{{-h, -h}, {h, -h}, {h, h}, {-h, h}, {-h, -h}},
	}}
}

func TestExtrudePlainSquare(t *testing.T) {
	m, err := ExtrudePlain(squareRegion(2), 1.5)
	require.NoError(t, err)

	assert.True(t, m.IsWatertight())
	assert.InDelta(t, 6.0, m.Volume(), 1e-9)

	min, max := m.Bounds()
	assert.InDelta(t, 0.0, min.Z, 1e-9)
	assert.InDelta(t, 1.5, max.Z, 1e-9)
}

func TestExtrudePlainAnnulus(t *testing.T) {
	ring := orb.MultiPolygon{Mandala.Annulus(0, 0, 5, 2, 16)}
	m, err := ExtrudePlain(ring, 0.8)
	require.NoError(t, err)

	assert.True(t, m.IsWatertight())
	// 棱柱体积恰为多边形面积乘高度
	assert.InDelta(t, Mandala.Area(ring)*0.8, m.Volume(), 1e-6)
}

func TestExtrudePlainEmpty(t *testing.T) {
	_, err := ExtrudePlain(nil, 1)
	assert.Error(t, err)
}

func TestChamferInvalidFallsBackToPlain(t *testing.T) {
	region := squareRegion(4)
	plain, err := ExtrudePlain(region, 1.0)
	require.NoError(t, err)

	for _, chamfer := range []float64{0, -0.2, 1.0, 2.0} {
		m := ExtrudeWithChamfer(region, 1.0, chamfer)
		assert.Equal(t, plain, m, "chamfer=%v", chamfer)
	}
}

func TestChamferReducesVolume(t *testing.T) {
	disc := orb.MultiPolygon{Mandala.Circle(0, 0, 5, 16)}
	plain, err := ExtrudePlain(disc, 1.0)
	require.NoError(t, err)

	chamfered := ExtrudeWithChamfer(disc, 1.0, 0.3)
	require.NotNil(t, chamfered)
	assert.True(t, chamfered.IsWatertight())
	assert.Less(t, chamfered.Volume(), plain.Volume())
	assert.Greater(t, chamfered.Volume(), plain.Volume()*0.8)

	min, max := chamfered.Bounds()
	assert.InDelta(t, 0.0, min.Z, 1e-9)
	assert.InDelta(t, 1.0, max.Z, 1e-9)
}

func TestChamferKeepsHoleTopology(t *testing.T) {
	ring := orb.MultiPolygon{Mandala.Annulus(0, 0, 5, 2, 16)}
	m := ExtrudeWithChamfer(ring, 1.0, 0.2)
	require.NotNil(t, m)
	assert.True(t, m.IsWatertight())
	// 底/中/顶三层共用同一顶点布局
	assert.Len(t, m.Vertices, 3*(64+64))
}

func TestChamferTooSteepDegradesToPlain(t *testing.T) {
	// 细轮廓在大倒角下内缩面积不足，应退化为直壁挤出
	thin := orb.MultiPolygon{Mandala.Annulus(0, 0, 5, 4.9, 16)}
	plain, err := ExtrudePlain(thin, 1.0)
	require.NoError(t, err)

	m := ExtrudeWithChamfer(thin, 1.0, 0.4)
	require.NotNil(t, m)
	assert.True(t, m.IsWatertight())
	assert.InDelta(t, plain.Volume(), m.Volume(), 1e-6)
}

func TestExtrudeVolumeMatchesArea(t *testing.T) {
	// 直壁挤出体积必须等于区域面积乘高度：
	// 任何部分退化为仅外环剖分都会把孔洞填实并被此检查捕获
	for i := 0; i < 20; i++ {
		seed := fmt.Sprintf("seed-%d", i)
		region := Mandala.Generate(seed, 12)
		require.False(t, Mandala.IsEmpty(region), "seed=%s", seed)

		m, err := ExtrudePlain(region, 1.2)
		require.NoError(t, err, "seed=%s", seed)
		assert.True(t, m.IsWatertight(), "seed=%s", seed)
		assert.InEpsilon(t, Mandala.Area(region)*1.2, m.Volume(), 0.01, "seed=%s", seed)
	}
}

func TestChamferedVolumeAcrossSeeds(t *testing.T) {
	for i := 0; i < 8; i++ {
		seed := fmt.Sprintf("seed-%d", i)
		region := Mandala.Generate(seed, 12)
		plainVol := Mandala.Area(region) * 1.0

		m := ExtrudeWithChamfer(region, 1.0, 0.15)
		require.NotNil(t, m, "seed=%s", seed)
		assert.True(t, m.IsWatertight(), "seed=%s", seed)
		v := m.Volume()
		assert.Greater(t, v, plainVol*0.8, "seed=%s", seed)
		assert.LessOrEqual(t, v, plainVol*1.001, "seed=%s", seed)
	}
}

func TestExtrudeCollinearBoundaryVertex(t *testing.T) {
	// 边上带共线中点的矩形：侧壁引用该顶点，顶底盖覆盖不得缺角
	region := orb.MultiPolygon{{
		{{0, 0}, {1, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}},
	}}
	m, err := ExtrudePlain(region, 1.0)
	require.NoError(t, err)
	assert.True(t, m.IsWatertight())
	assert.InDelta(t, 4.0, m.Volume(), 1e-9)
}

func TestFallbackDiscTotality(t *testing.T) {
	m := ExtrudeWithChamfer(nil, 1.0, 0.15)
	require.NotNil(t, m)
	assert.True(t, m.IsWatertight())
	// 空区域名义半径1mm
	assert.InEpsilon(t, math.Pi*1*1*1.0, m.Volume(), 0.01)

	degenerate := orb.MultiPolygon{{
		{{0, 0}, {3, 0}, {0, 0}},
	}}
	m = ExtrudeWithChamfer(degenerate, 2.0, 0.15)
	require.NotNil(t, m)
	assert.True(t, m.IsWatertight())
	assert.Positive(t, m.Volume())
}

func TestCylinder(t *testing.T) {
	m := Cylinder(2, 3, 64)
	assert.True(t, m.IsWatertight())
	assert.InEpsilon(t, math.Pi*4*3, m.Volume(), 0.01)

	min, max := m.Bounds()
	assert.InDelta(t, -1.5, min.Z, 1e-9)
	assert.InDelta(t, 1.5, max.Z, 1e-9)
}
