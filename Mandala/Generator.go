package Mandala

import (
	"hash/fnv"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/paulmach/orb"
)

// 图案合成器：给定种子与物理直径，生成限制在边界圆内的有效平面区域

var symmetryChoices = []int{6, 8, 12}

// RimThicknessRatio 外沿环厚度与直径的比例，保证任意图案都有连续外壁
const RimThicknessRatio = 0.04

// 空种子时使用的共享随机源：不重播种，保留调用时刻的生成器状态
var (
	fallbackMu  sync.Mutex
	fallbackRng = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// SeedValue 种子字符串的稳定32位哈希（FNV-1a），同种子必得同值
func SeedValue(seed string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return h.Sum32()
}

// NewRand 按种子构建独立随机生成器，请求之间互不干扰；
// 空种子回退到共享生成器（有意保留的非确定性出口）
func NewRand(seed string) (*rand.Rand, func()) {
	if seed == "" {
		fallbackMu.Lock()
		return fallbackRng, fallbackMu.Unlock
	}
	return rand.New(rand.NewSource(int64(SeedValue(seed)))), func() {}
}

// QuadSegs 按直径自适应的圆弧细分质量
func QuadSegs(diameterMM float64) int {
	q := int(diameterMM * 1.5)
	if q < 16 {
		q = 16
	}
	if q > 32 {
		q = 32
	}
	return q
}

// MinThickness 可打印最小线宽，随直径缩放且不低于绝对下限
func MinThickness(diameterMM float64) float64 {
	return math.Max(0.25, diameterMM*0.02)
}

// Generate 生成图案区域：
// 1. 固定外沿环保证结构连续
// 2. 随机抽取若干基元并入
// 3. 合并、修复、裁剪到边界圆
// 输出恒为有效区域，除全部基元失败的退化情形外非空
func Generate(seed string, diameterMM float64) orb.MultiPolygon {
	rng, release := NewRand(seed)
	defer release()

	radiusMM := diameterMM / 2.0
	quadSegs := QuadSegs(diameterMM)
	boundary := orb.MultiPolygon{Circle(0, 0, radiusMM, quadSegs)}

	symmetry := symmetryChoices[rng.Intn(len(symmetryChoices))]
	numComponents := 3 + rng.Intn(3)

	rimThickness := diameterMM * RimThicknessRatio
	rim := orb.MultiPolygon{Annulus(0, 0, radiusMM, radiusMM-rimThickness, quadSegs)}

	combined := rim
	for i := 0; i < numComponents; i++ {
		kind := ShapeKind(rng.Intn(int(shapeKindCount)))
		minT := MinThickness(diameterMM)
		maxT := math.Max(minT, diameterMM*0.04)
		thickness := uniform(rng, minT, maxT)

		component := BuildShape(kind, rng, radiusMM, symmetry, thickness, quadSegs)
		if IsEmpty(component) {
			continue
		}
		combined = Union(combined, component)
	}

	combined = Repair(combined)

	final := Intersect(combined, boundary)
	if IsEmpty(final) {
		// 退化兜底：仅保留外沿环
		final = Intersect(rim, boundary)
	}
	return final
}
