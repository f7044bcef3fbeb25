package Mesh

// 场景组装：底盘与浮雕合成命名网格集合

// FusionOffsetMM 浮雕下沉进底盘的熔接量，保证切片后两实体连为一体
const FusionOffsetMM = 0.05

// BaseSections 底盘圆柱细分数
const BaseSections = 128

// Scene 名称到网格的集合，由导出协作方一次性消费
type Scene map[string]*MeshSolid

// Assemble 组装底盘与浮雕：
// 底盘顶面落在z=0，浮雕整体下沉FusionOffsetMM形成薄层重叠
func Assemble(baseRadiusMM, baseHeightMM float64, relief *MeshSolid) Scene {
	base := Cylinder(baseRadiusMM, baseHeightMM, BaseSections)
	base.Translate(0, 0, -baseHeightMM/2)

	relief.Translate(0, 0, -FusionOffsetMM)

	return Scene{
		"Base":   base,
		"Relief": relief,
	}
}
