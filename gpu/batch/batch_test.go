// SPDX-License-Identifier: Unlicense OR MIT

package batch

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glint.dev/gpu"
	"glint.dev/internal/gl"
	"glint.dev/internal/gl/gltest"
)

func newTestDrawer(t *testing.T) (*Drawer, *gltest.Functions) {
	t.Helper()
	f := gltest.New()
	dev, err := gpu.NewDevice(f, 800, 600)
	require.NoError(t, err)
	d, err := NewDrawer(dev)
	require.NoError(t, err)
	t.Cleanup(d.Release)
	return d, f
}

func points(n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			Position: mgl32.Vec3{float32(i), 0, 0},
			Size:     4,
			Color:    mgl32.Vec4{1, 1, 1, 1},
		}
	}
	return pts
}

func TestLayouts(t *testing.T) {
	assert.Equal(t, uintptr(pointSize), unsafe.Sizeof(Point{}))
	assert.Equal(t, uintptr(uniformsSize), unsafe.Sizeof(uniforms{}))
}

func TestCapacity(t *testing.T) {
	d, _ := newTestDrawer(t)
	pb, err := d.NewPointBatch(10)
	require.NoError(t, err)
	lb, err := d.NewLineBatch(10)
	require.NoError(t, err)
	tb, err := d.NewPolygonBatch(10)
	require.NoError(t, err)
	assert.Equal(t, 10, pb.Cap())
	assert.Equal(t, 20, lb.Cap())
	assert.Equal(t, 30, tb.Cap())

	_, err = d.NewPointBatch(0)
	assert.Error(t, err)
}

func TestAppendDropsOverflow(t *testing.T) {
	d, _ := newTestDrawer(t)
	lb, err := d.NewLineBatch(2)
	require.NoError(t, err)

	assert.Equal(t, 3, lb.Append(points(3)))
	assert.Equal(t, 3, lb.Len())
	assert.Equal(t, 1, lb.Append(points(5)))
	assert.Equal(t, lb.Cap(), lb.Len())
	assert.Equal(t, 0, lb.Append(points(1)))
	assert.Equal(t, 0, lb.Append(nil))

	lb.Draw(mgl32.Ident4())
	assert.Equal(t, 0, lb.Len())
	assert.Equal(t, 4, lb.Append(points(4)))
}

func TestAppendWritesAtTail(t *testing.T) {
	d, f := newTestDrawer(t)
	pb, err := d.NewPointBatch(8)
	require.NoError(t, err)
	f.Reset()
	pb.Append(points(2))
	pb.Append(points(3))
	var offsets []any
	for _, c := range f.Calls {
		if c.Name == "BufferSubData" {
			offsets = append(offsets, c.Args[1])
		}
	}
	assert.Equal(t, []any{0, 2 * pointSize}, offsets)
}

func TestPointBatchDraw(t *testing.T) {
	d, f := newTestDrawer(t)
	pb, err := d.NewPointBatch(16)
	require.NoError(t, err)
	pb.Append(points(5))
	f.Reset()
	pb.Draw(mgl32.Ident4())
	require.Len(t, f.Draws, 1)
	draw := f.Draws[0]
	assert.Equal(t, gl.Enum(gl.TRIANGLE_STRIP), draw.Mode)
	assert.Equal(t, 4, draw.Count)
	assert.Equal(t, 5, draw.Instances)
	assert.Equal(t, 0, pb.Len())
}

func TestEmptyDrawIssuesNothing(t *testing.T) {
	d, f := newTestDrawer(t)
	pb, err := d.NewPointBatch(4)
	require.NoError(t, err)
	f.Reset()
	pb.Draw(mgl32.Ident4())
	assert.Empty(t, f.Draws)
	assert.Equal(t, 0, pb.Len())
}

func TestLineBatchDrawsCompletePairs(t *testing.T) {
	d, f := newTestDrawer(t)
	lb, err := d.NewLineBatch(4)
	require.NoError(t, err)
	lb.Append(points(5))
	f.Reset()
	lb.Draw(mgl32.Ident4())
	require.Len(t, f.Draws, 1)
	assert.Equal(t, 2, f.Draws[0].Instances)
	assert.Equal(t, 0, lb.Len())

	// A single unpaired point draws nothing but still resets.
	lb.Append(points(1))
	lb.Draw(mgl32.Ident4())
	assert.Len(t, f.Draws, 1)
	assert.Equal(t, 0, lb.Len())
}

func TestPolygonBatchDraw(t *testing.T) {
	d, f := newTestDrawer(t)
	tb, err := d.NewPolygonBatch(4)
	require.NoError(t, err)
	tb.Append(points(7))
	f.Reset()
	tb.Draw(mgl32.Ident4())
	require.Len(t, f.Draws, 1)
	draw := f.Draws[0]
	assert.Equal(t, gl.Enum(gl.TRIANGLES), draw.Mode)
	assert.Equal(t, 6, draw.Count)
	assert.Equal(t, 1, draw.Instances)
	assert.Equal(t, 0, tb.Len())
}

func TestUniformsCarryInverseViewport(t *testing.T) {
	d, f := newTestDrawer(t)
	pb, err := d.NewPointBatch(1)
	require.NoError(t, err)
	pb.Append(points(1))
	f.Reset()
	pb.Draw(mgl32.Ident4())
	var sizes []any
	for _, c := range f.Calls {
		if c.Name == "BufferSubData" && c.Args[0] == gl.Enum(gl.UNIFORM_BUFFER) {
			sizes = append(sizes, c.Args[2])
		}
	}
	assert.Equal(t, []any{uniformsSize}, sizes)
}

func TestDrawerReleasesEverything(t *testing.T) {
	f := gltest.New()
	dev, err := gpu.NewDevice(f, 800, 600)
	require.NoError(t, err)
	d, err := NewDrawer(dev)
	require.NoError(t, err)
	pb, err := d.NewPointBatch(4)
	require.NoError(t, err)
	pb.Release()
	d.Release()
	assert.Equal(t, 0, f.Live("buffer"))
	assert.Equal(t, 0, f.Live("shader"))
	assert.Equal(t, 0, f.Live("program"))
}

func TestDrawerCompileFailure(t *testing.T) {
	f := gltest.New()
	f.CompileError = func(typ gl.Enum, src string) string {
		if typ == gl.FRAGMENT_SHADER {
			return "no precision"
		}
		return ""
	}
	dev, err := gpu.NewDevice(f, 800, 600)
	require.NoError(t, err)
	_, err = NewDrawer(dev)
	var cerr *gpu.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, f.Live("buffer"))
	assert.Equal(t, 0, f.Live("shader"))
}
