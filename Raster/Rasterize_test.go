package Raster

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrainArc/MandalaRelief/Mandala"
)

func TestRasterizeDiscCoverage(t *testing.T) {
	disc := orb.MultiPolygon{Mandala.Circle(0, 0, 6, 32)}
	img := Rasterize(disc, 12, 256)

	count := 0
	for _, p := range img.Pix {
		if p >= 128 {
			count++
		}
	}
	// 满径圆盘覆盖率应接近πR²像素
	assert.InEpsilon(t, math.Pi*128*128, float64(count), 0.03)
}

func TestRasterizeDonutHole(t *testing.T) {
	donut := orb.MultiPolygon{Mandala.Annulus(0, 0, 5, 2, 32)}
	img := Rasterize(donut, 12, 256)

	// 圆心在孔洞内应为背景
	assert.Zero(t, img.GrayAt(128, 128).Y)
	// 环带中部应为前景
	assert.Greater(t, img.GrayAt(202, 128).Y, uint8(200))
}

func TestRasterizeDeterministic(t *testing.T) {
	region := Mandala.Generate("abc", 12)
	a := Rasterize(region, 12, 128)
	b := Rasterize(region, 12, 128)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestRasterizeEmptyRegion(t *testing.T) {
	img := Rasterize(nil, 12, 64)
	for _, p := range img.Pix {
		require.Zero(t, p)
	}
}

func TestRasterizeBadParams(t *testing.T) {
	disc := orb.MultiPolygon{Mandala.Circle(0, 0, 6, 16)}
	img := Rasterize(disc, 0, 64)
	assert.Equal(t, 64, img.Bounds().Dx())
	for _, p := range img.Pix {
		require.Zero(t, p)
	}
}

func TestEncodePNG(t *testing.T) {
	img := Rasterize(orb.MultiPolygon{Mandala.Circle(0, 0, 6, 16)}, 12, 64)
	data, err := EncodePNG(img)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestEncodeWebP(t *testing.T) {
	img := Rasterize(orb.MultiPolygon{Mandala.Circle(0, 0, 6, 16)}, 12, 64)
	data, err := EncodeWebP(img)
	require.NoError(t, err)
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}
