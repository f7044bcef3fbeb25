package Legacy

import (
	"image"
	"math"

	"github.com/GrainArc/MandalaRelief/Mandala"
)

// 传统栅格模式：直接在像素网格上绘制曼陀罗高度图。
// 保留作为矢量管线的回退方案，几何精度低于矢量模式

var legacySymmetry = []int{6, 8, 12, 16}

// GenerateHeightmap 按种子生成resolution×resolution灰度高度图，
// 255为浮雕顶面，0为底面
func GenerateHeightmap(seed string, resolution int) *image.Gray {
	rng, release := Mandala.NewRand(seed)
	defer release()

	img := image.NewGray(image.Rect(0, 0, resolution, resolution))
	cx := float64(resolution) / 2
	cy := float64(resolution) / 2
	radius := float64(resolution) / 2

	// 外沿环
	rimThickness := float64(resolution) * 0.03
	drawRingBand(img, cx, cy, radius-rimThickness, radius)

	symmetry := legacySymmetry[rng.Intn(len(legacySymmetry))]
	numComponents := 4 + rng.Intn(5)

	for n := 0; n < numComponents; n++ {
		kind := Mandala.ShapeKind(rng.Intn(4))
		minT := float64(resolution) * 0.015
		maxT := float64(resolution) * 0.03
		thickness := minT + rng.Float64()*(maxT-minT)

		switch kind {
		case Mandala.ShapeRing:
			r := (0.1 + rng.Float64()*0.8) * radius
			drawRingBand(img, cx, cy, r-thickness/2, r+thickness/2)

		case Mandala.ShapeRays:
			rStart := rng.Float64() * 0.5 * radius
			rEnd := (rStart/radius + 0.1 + rng.Float64()*(0.95-rStart/radius-0.1)) * radius
			for i := 0; i < symmetry; i++ {
				angle := 2 * math.Pi * float64(i) / float64(symmetry)
				x1 := cx + rStart*math.Cos(angle)
				y1 := cy + rStart*math.Sin(angle)
				x2 := cx + rEnd*math.Cos(angle)
				y2 := cy + rEnd*math.Sin(angle)
				drawThickLine(img, x1, y1, x2, y2, thickness)
			}

		case Mandala.ShapePetalRing:
			dOffset := (0.2 + rng.Float64()*0.5) * radius
			pSize := (0.1 + rng.Float64()*0.3) * radius
			for i := 0; i < symmetry; i++ {
				angle := 2 * math.Pi * float64(i) / float64(symmetry)
				px := cx + dOffset*math.Cos(angle)
				py := cy + dOffset*math.Sin(angle)
				drawRingBand(img, px, py, pSize-thickness/2, pSize+thickness/2)
			}

		case Mandala.ShapeDotRing:
			rDist := (0.2 + rng.Float64()*0.7) * radius
			dotSize := thickness + rng.Float64()*thickness*2
			count := symmetry * (rng.Intn(2) + 1)
			for i := 0; i < count; i++ {
				angle := 2 * math.Pi * float64(i) / float64(count)
				px := cx + rDist*math.Cos(angle)
				py := cy + rDist*math.Sin(angle)
				drawDisc(img, px, py, dotSize)
			}
		}
	}

	// 主圆外清零
	maskCircle(img, cx, cy, radius)
	return img
}

// drawRingBand 填充圆环带[rInner, rOuter]
func drawRingBand(img *image.Gray, cx, cy, rInner, rOuter float64) {
	if rOuter <= 0 {
		return
	}
	if rInner < 0 {
		rInner = 0
	}
	b := img.Bounds()
	x0 := clampInt(int(cx-rOuter)-1, b.Min.X, b.Max.X)
	x1 := clampInt(int(cx+rOuter)+2, b.Min.X, b.Max.X)
	y0 := clampInt(int(cy-rOuter)-1, b.Min.Y, b.Max.Y)
	y1 := clampInt(int(cy+rOuter)+2, b.Min.Y, b.Max.Y)
	in2 := rInner * rInner
	out2 := rOuter * rOuter
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			d2 := dx*dx + dy*dy
			if d2 >= in2 && d2 <= out2 {
				img.Pix[img.PixOffset(x, y)] = 255
			}
		}
	}
}

// drawDisc 填充实心圆
func drawDisc(img *image.Gray, cx, cy, r float64) {
	drawRingBand(img, cx, cy, 0, r)
}

// drawThickLine 沿线段以半步长连续盖章画粗线
func drawThickLine(img *image.Gray, x1, y1, x2, y2, thickness float64) {
	length := math.Hypot(x2-x1, y2-y1)
	steps := int(length*2) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		drawDisc(img, x1+(x2-x1)*t, y1+(y2-y1)*t, thickness/2)
	}
}

// maskCircle 清除主圆外的像素
func maskCircle(img *image.Gray, cx, cy, r float64) {
	b := img.Bounds()
	r2 := r * r
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy > r2 {
				img.Pix[img.PixOffset(x, y)] = 0
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
