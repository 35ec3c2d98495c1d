// SPDX-License-Identifier: Unlicense OR MIT

package render

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"glint.dev/gpu"
	"glint.dev/internal/gl"
)

// Vertex is the vertex format of every mesh.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// VertexLayout describes Vertex to a pipeline.
var VertexLayout = gpu.VertexLayout{
	{Index: 0, Type: gpu.Float, Components: 3},
	{Index: 1, Type: gpu.Float, Components: 3},
	{Index: 2, Type: gpu.Float, Components: 2},
}

// Mesh is an indexed triangle list in GPU memory.
type Mesh struct {
	vertices *gpu.Buffer
	indices  *gpu.Buffer
	count    int
}

// NewMesh uploads vertices and indices to static buffers.
func NewMesh(dev *gpu.Device, vertices []Vertex, indices []uint32) (*Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, errors.New("render: empty mesh")
	}
	for _, i := range indices {
		if int(i) >= len(vertices) {
			return nil, errors.New("render: mesh index out of range")
		}
	}
	vb, err := dev.NewBuffer(gpu.VertexBuffer, gpu.StaticDraw, len(vertices)*VertexLayout.Stride(), gl.BytesView(vertices))
	if err != nil {
		return nil, err
	}
	ib, err := dev.NewBuffer(gpu.IndexBuffer, gpu.StaticDraw, len(indices)*4, gl.BytesView(indices))
	if err != nil {
		vb.Release()
		return nil, err
	}
	return &Mesh{vertices: vb, indices: ib, count: len(indices)}, nil
}

// NewCubeMesh returns a unit cube centered on the origin with flat
// face normals.
func NewCubeMesh(dev *gpu.Device) (*Mesh, error) {
	v, i := CubeGeometry()
	return NewMesh(dev, v, i)
}

// NewPlaneMesh returns a unit square through the origin facing normal.
func NewPlaneMesh(dev *gpu.Device, normal mgl32.Vec3) (*Mesh, error) {
	v, i, err := PlaneGeometry(normal)
	if err != nil {
		return nil, err
	}
	return NewMesh(dev, v, i)
}

// Count returns the number of indices.
func (m *Mesh) Count() int {
	return m.count
}

// Release frees the vertex and index buffers.
func (m *Mesh) Release() {
	m.indices.Release()
	m.vertices.Release()
}

// Draw draws the mesh with the pipeline set on dev.
func (m *Mesh) Draw(dev *gpu.Device) {
	m.DrawInstanced(dev, 1)
}

// DrawInstanced draws instances copies of the mesh.
func (m *Mesh) DrawInstanced(dev *gpu.Device, instances int) {
	dev.SetVertexBuffer(m.vertices)
	dev.SetIndexBuffer(m.indices, gpu.IndexUint32)
	dev.DrawInstanced(instances, m.count, 0)
}

// cubeFaces lists the outward normal and the in-plane axes of each
// cube face, with u×v = n so that faces wind counter clockwise.
var cubeFaces = [6]struct{ n, u, v mgl32.Vec3 }{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
}

// CubeGeometry returns the 24 vertices and 36 indices of the cube
// built by NewCubeMesh.
func CubeGeometry() ([]Vertex, []uint32) {
	corners := [4]mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range cubeFaces {
		base := uint32(len(vertices))
		for _, c := range corners {
			p := f.n.Add(f.u.Mul(c.X())).Add(f.v.Mul(c.Y())).Mul(0.5)
			vertices = append(vertices, Vertex{
				Position: p,
				Normal:   f.n,
				UV:       mgl32.Vec2{(c.X() + 1) / 2, (c.Y() + 1) / 2},
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

// PlaneGeometry returns the 4 vertices and 6 indices of the plane
// built by NewPlaneMesh.
func PlaneGeometry(normal mgl32.Vec3) ([]Vertex, []uint32, error) {
	if normal.Len() == 0 {
		return nil, nil, errors.New("render: zero plane normal")
	}
	up := mgl32.Vec3{0, 1, 0}
	rot := mgl32.QuatBetweenVectors(up, normal.Normalize())
	vertices := []Vertex{
		{Position: mgl32.Vec3{-0.5, 0, 0.5}, UV: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{0.5, 0, 0.5}, UV: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{-0.5, 0, -0.5}, UV: mgl32.Vec2{0, 1}},
		{Position: mgl32.Vec3{0.5, 0, -0.5}, UV: mgl32.Vec2{1, 1}},
	}
	for i := range vertices {
		vertices[i].Position = rot.Rotate(vertices[i].Position)
		vertices[i].Normal = rot.Rotate(up)
	}
	return vertices, []uint32{0, 1, 2, 3, 2, 1}, nil
}
