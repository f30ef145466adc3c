package cubes

import (
	"fmt"
	"path/filepath"

	"cubefield/internal/graphics"
	renderer "cubefield/internal/graphics/renderer"
	"cubefield/internal/mesh"
	"cubefield/internal/profiling"
	"cubefield/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	VertShader = filepath.Join(graphics.ShadersDir, "cubes.vert")
	FragShader = filepath.Join(graphics.ShadersDir, "cubes.frag")
)

// gpuBatch is one uploaded mesh plus the placements of every node drawing it
type gpuBatch struct {
	vao         uint32
	meshVBO     uint32
	ebo         uint32
	instanceVBO uint32

	indexCount    int32
	instanceCount int32
}

// Cubes draws the grid's scene graph with one instanced call per distinct
// mesh. Each mesh is uploaded once; each node only contributes an offset,
// scale and tint.
type Cubes struct {
	grid   *scene.Grid
	bounds scene.AABB
	shader *graphics.Shader

	batches []gpuBatch
}

// NewCubes creates a renderable for grid; GL resources are created in Init
func NewCubes(grid *scene.Grid) *Cubes {
	return &Cubes{grid: grid}
}

func (c *Cubes) Init() error {
	var err error
	c.shader, err = graphics.NewShader(VertShader, FragShader)
	if err != nil {
		return err
	}
	batches, err := PackGraph(c.grid.Graph())
	if err != nil {
		return fmt.Errorf("pack cube instances: %w", err)
	}
	for _, b := range batches {
		c.batches = append(c.batches, upload(b))
	}
	c.bounds, _ = c.grid.Bounds()
	return nil
}

func upload(b Batch) gpuBatch {
	m := b.Mesh
	if m == nil {
		m = mesh.BuildCube()
	}
	vertices := m.Interleaved()
	indices := m.Indices()

	var gb gpuBatch
	gl.GenVertexArrays(1, &gb.vao)
	gl.BindVertexArray(gb.vao)

	// shared mesh
	gl.GenBuffers(1, &gb.meshVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gb.meshVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(mesh.FloatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 2, gl.FLOAT, false, stride, 10*4)

	gl.GenBuffers(1, &gb.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gb.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	gb.indexCount = int32(len(indices))

	// per-instance placements
	gl.GenBuffers(1, &gb.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gb.instanceVBO)
	if len(b.Instances) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(b.Instances)*4, gl.Ptr(b.Instances), gl.STATIC_DRAW)
	}
	gb.instanceCount = int32(b.Count())

	istride := int32(FloatsPerInstance * 4)
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointerWithOffset(4, 3, gl.FLOAT, false, istride, 0)
	gl.VertexAttribDivisor(4, 1)
	gl.EnableVertexAttribArray(5)
	gl.VertexAttribPointerWithOffset(5, 1, gl.FLOAT, false, istride, 3*4)
	gl.VertexAttribDivisor(5, 1)
	gl.EnableVertexAttribArray(6)
	gl.VertexAttribPointerWithOffset(6, 4, gl.FLOAT, false, istride, 4*4)
	gl.VertexAttribDivisor(6, 1)

	gl.BindVertexArray(0)
	return gb
}

func (c *Cubes) Render(ctx renderer.RenderContext) {
	if len(c.batches) == 0 {
		return
	}
	defer profiling.Track("renderer.cubes")()

	// the grid is a handful of draw calls, so cull it as a whole
	if !graphics.BoxInFrustum(c.bounds.Min, c.bounds.Max, ctx.Proj.Mul4(ctx.View)) {
		return
	}

	c.shader.Use()
	c.shader.SetMatrix4("proj", &ctx.Proj[0])
	c.shader.SetMatrix4("view", &ctx.View[0])
	c.shader.SetVector3("lightDir", -0.4, -0.6, -1.0)

	for _, b := range c.batches {
		if b.instanceCount == 0 {
			continue
		}
		gl.BindVertexArray(b.vao)
		gl.DrawElementsInstanced(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil, b.instanceCount)
	}
	gl.BindVertexArray(0)
}

func (c *Cubes) SetViewport(width, height int) {}

func (c *Cubes) Dispose() {
	for i := range c.batches {
		b := &c.batches[i]
		for _, buf := range []*uint32{&b.meshVBO, &b.ebo, &b.instanceVBO} {
			if *buf != 0 {
				gl.DeleteBuffers(1, buf)
			}
		}
		if b.vao != 0 {
			gl.DeleteVertexArrays(1, &b.vao)
		}
	}
	c.batches = nil
	if c.shader != nil {
		c.shader.Delete()
	}
}
