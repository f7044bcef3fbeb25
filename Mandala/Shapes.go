package Mandala

import (
	"math"
	"math/rand"

	"github.com/paulmach/orb"
)

// 图案基元生成器：四类形状族，参数由随机流按直径比例抽取

// ShapeKind 形状族封闭枚举，避免字符串分发
type ShapeKind int

const (
	ShapeRing ShapeKind = iota
	ShapeRays
	ShapePetalRing
	ShapeDotRing
	shapeKindCount
)

// BuildShape 按形状族生成基元区域，生成失败或退化时返回nil，由上层静默跳过
func BuildShape(kind ShapeKind, rng *rand.Rand, radiusMM float64, symmetry int, thickness float64, quadSegs int) orb.MultiPolygon {
	switch kind {
	case ShapeRing:
		return buildRing(rng, radiusMM, thickness, quadSegs)
	case ShapeRays:
		return buildRays(rng, radiusMM, symmetry, thickness, quadSegs)
	case ShapePetalRing:
		return buildPetalRing(rng, radiusMM, symmetry, thickness, quadSegs)
	case ShapeDotRing:
		return buildDotRing(rng, radiusMM, symmetry, thickness, quadSegs)
	}
	return nil
}

// buildRing 同心圆环，半径在0.1R~0.9R之间，内半径向零收底
func buildRing(rng *rand.Rand, radiusMM, thickness float64, quadSegs int) orb.MultiPolygon {
	r := uniform(rng, 0.1, 0.9) * radiusMM
	inner := math.Max(0, r-thickness/2)
	return orb.MultiPolygon{Annulus(0, 0, r+thickness/2, inner, quadSegs)}
}

// buildRays 对称放射线，线段加粗为圆头长条后合并
func buildRays(rng *rand.Rand, radiusMM float64, symmetry int, thickness float64, quadSegs int) orb.MultiPolygon {
	rStart := uniform(rng, 0.0, 0.5) * radiusMM
	rEnd := uniform(rng, rStart/radiusMM+0.1, 0.95) * radiusMM
	if rEnd <= rStart {
		return nil
	}
	parts := make([]orb.MultiPolygon, 0, symmetry)
	for i := 0; i < symmetry; i++ {
		angle := 2 * math.Pi * float64(i) / float64(symmetry)
		x1 := rStart * math.Cos(angle)
		y1 := rStart * math.Sin(angle)
		x2 := rEnd * math.Cos(angle)
		y2 := rEnd * math.Sin(angle)
		parts = append(parts, orb.MultiPolygon{Capsule(x1, y1, x2, y2, thickness/2, quadSegs)})
	}
	return UnionAll(parts)
}

// buildPetalRing 花瓣环：对称分布的小圆环，内半径不足时为实心圆
func buildPetalRing(rng *rand.Rand, radiusMM float64, symmetry int, thickness float64, quadSegs int) orb.MultiPolygon {
	dOffset := uniform(rng, 0.2, 0.7) * radiusMM
	pSize := uniform(rng, 0.1, 0.4) * radiusMM
	parts := make([]orb.MultiPolygon, 0, symmetry)
	for i := 0; i < symmetry; i++ {
		angle := 2 * math.Pi * float64(i) / float64(symmetry)
		cx := dOffset * math.Cos(angle)
		cy := dOffset * math.Sin(angle)
		inner := math.Max(0, pSize-thickness/2)
		parts = append(parts, orb.MultiPolygon{Annulus(cx, cy, pSize+thickness/2, inner, quadSegs)})
	}
	return UnionAll(parts)
}

// buildDotRing 点环：沿圆周均布的实心圆点，尺寸保证可打印下限
func buildDotRing(rng *rand.Rand, radiusMM float64, symmetry int, thickness float64, quadSegs int) orb.MultiPolygon {
	rDist := uniform(rng, 0.3, 0.8) * radiusMM
	dotSize := uniform(rng, math.Max(0.15, thickness), math.Max(0.25, thickness*2))
	count := symmetry * (rng.Intn(2) + 1)
	parts := make([]orb.MultiPolygon, 0, count)
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		cx := rDist * math.Cos(angle)
		cy := rDist * math.Sin(angle)
		parts = append(parts, orb.MultiPolygon{Circle(cx, cy, dotSize, quadSegs)})
	}
	return UnionAll(parts)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
