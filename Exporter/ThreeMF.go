package Exporter

import (
	"io"
	"sort"

	"github.com/GrainArc/MandalaRelief/Mesh"
	"github.com/hpinc/go3mf"
)

// 三维场景导出：3MF制造交换格式，单位毫米，一个文件承载多网格

// WriteThreeMF 将命名网格集合编码为3MF写入w
func WriteThreeMF(w io.Writer, scene Mesh.Scene) error {
	model := new(go3mf.Model)
	model.Units = go3mf.UnitMillimeter

	names := make([]string, 0, len(scene))
	for name := range scene {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		solid := scene[name]
		mesh := new(go3mf.Mesh)
		for _, v := range solid.Vertices {
			mesh.Vertices.Vertex = append(mesh.Vertices.Vertex,
				go3mf.Point3D{float32(v.X), float32(v.Y), float32(v.Z)})
		}
		for _, f := range solid.Faces {
			mesh.Triangles.Triangle = append(mesh.Triangles.Triangle,
				go3mf.Triangle{V1: uint32(f[0]), V2: uint32(f[1]), V3: uint32(f[2])})
		}

		obj := &go3mf.Object{
			ID:   uint32(i + 1),
			Name: name,
			Mesh: mesh,
		}
		model.Resources.Objects = append(model.Resources.Objects, obj)
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})
	}

	return go3mf.NewEncoder(w).Encode(model)
}
