// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Buffer      struct{ V uint }
	Framebuffer struct{ V uint }
	Program     struct{ V uint }
	Sampler     struct{ V uint }
	Shader      struct{ V uint }
	Texture     struct{ V uint }
	VertexArray struct{ V uint }
)

func (b Buffer) Valid() bool {
	return b.V != 0
}

func (f Framebuffer) Valid() bool {
	return f.V != 0
}

func (p Program) Valid() bool {
	return p.V != 0
}

func (s Sampler) Valid() bool {
	return s.V != 0
}

func (s Shader) Valid() bool {
	return s.V != 0
}

func (t Texture) Valid() bool {
	return t.V != 0
}

func (a VertexArray) Valid() bool {
	return a.V != 0
}

func (b Buffer) Equal(b2 Buffer) bool {
	return b == b2
}

func (f Framebuffer) Equal(f2 Framebuffer) bool {
	return f == f2
}

func (p Program) Equal(p2 Program) bool {
	return p == p2
}

func (s Sampler) Equal(s2 Sampler) bool {
	return s == s2
}

func (t Texture) Equal(t2 Texture) bool {
	return t == t2
}

func (a VertexArray) Equal(a2 VertexArray) bool {
	return a == a2
}
