package Exporter

import (
	"io"
	"sort"

	"github.com/GrainArc/MandalaRelief/Mesh"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// 三维场景导出：二进制glTF（GLB），供前端实时预览

// WriteGLB 将命名网格集合编码为GLB写入w，网格按名称排序保证输出稳定
func WriteGLB(w io.Writer, scene Mesh.Scene) error {
	doc := gltf.NewDocument()

	names := make([]string, 0, len(scene))
	for name := range scene {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		solid := scene[name]
		positions := make([][3]float32, 0, len(solid.Vertices))
		for _, v := range solid.Vertices {
			positions = append(positions, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
		}
		indices := make([]uint32, 0, len(solid.Faces)*3)
		for _, f := range solid.Faces {
			indices = append(indices, uint32(f[0]), uint32(f[1]), uint32(f[2]))
		}

		posAcc := modeler.WritePosition(doc, positions)
		idxAcc := modeler.WriteIndices(doc, indices)

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: name,
			Primitives: []*gltf.Primitive{{
				Indices: gltf.Index(idxAcc),
				Attributes: map[string]uint32{
					gltf.POSITION: posAcc,
				},
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}
