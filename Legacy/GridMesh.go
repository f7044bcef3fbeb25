package Legacy

import (
	"image"

	"github.com/GrainArc/MandalaRelief/Mesh"
)

// 高度图转网格：双线性栅格挤出，每个栅格单元两个三角形。
// 浮雕仅为表面网格，靠与底盘重叠保证切片连通

// GridOverlapMM 底盘上抬量，吞没浮雕表面底缘形成重叠
const GridOverlapMM = 0.2

// BuildGridScene 由高度图构建底盘+浮雕表面场景
func BuildGridScene(hm *image.Gray, diameterMM, baseHeightMM, reliefHeightMM float64) Mesh.Scene {
	res := hm.Bounds().Dx()
	radiusMM := diameterMM / 2.0

	relief := &Mesh.MeshSolid{}
	if res >= 2 {
		step := 2.0 * radiusMM / float64(res-1)
		for row := 0; row < res; row++ {
			for col := 0; col < res; col++ {
				h := float64(hm.Pix[hm.PixOffset(col, row)]) / 255.0
				relief.Vertices = append(relief.Vertices, Mesh.Vertex{
					X: -radiusMM + float64(col)*step,
					Y: -radiusMM + float64(row)*step,
					Z: h * reliefHeightMM,
				})
			}
		}
		for row := 0; row < res-1; row++ {
			for col := 0; col < res-1; col++ {
				v0 := row*res + col
				v1 := row*res + col + 1
				v2 := (row+1)*res + col
				v3 := (row+1)*res + col + 1
				relief.Faces = append(relief.Faces,
					Mesh.Face{v0, v2, v1},
					Mesh.Face{v1, v2, v3})
			}
		}
	}

	base := Mesh.Cylinder(radiusMM, baseHeightMM, Mesh.BaseSections)
	base.Translate(0, 0, -baseHeightMM/2)
	// 底盘上抬与浮雕表面底缘重叠
	base.Translate(0, 0, GridOverlapMM)

	return Mesh.Scene{
		"Base":   base,
		"Relief": relief,
	}
}
