// Package graphics owns everything GPU-side: shader compilation, the
// texture atlas, per-chunk vertex buffers and the draw passes. All of
// it runs on the render thread; worker jobs only ever produce
// CPU-side vertex slices.
package graphics

import (
	"sort"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"sandvox/internal/meshing"
	"sandvox/internal/profiling"
	"sandvox/internal/world"
)

// meshBuffers guards one VAO/VBO pair so release is guaranteed when a
// chunk's buffers are replaced or the renderer shuts down.
type meshBuffers struct {
	vao, vbo uint32
	count    int32
}

func (m *meshBuffers) upload(verts []float32) {
	if len(verts) == 0 {
		m.release()
		return
	}
	if m.vao == 0 {
		gl.GenVertexArrays(1, &m.vao)
		gl.GenBuffers(1, &m.vbo)

		gl.BindVertexArray(m.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)

		stride := int32(meshing.VertexStride * 4)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
		gl.EnableVertexAttribArray(2)
		gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 5*4)
	} else {
		gl.BindVertexArray(m.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	}

	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
	m.count = int32(len(verts) / meshing.VertexStride)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (m *meshBuffers) release() {
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	m.count = 0
}

type chunkMesh struct {
	opaque      meshBuffers
	transparent meshBuffers
}

// Renderer draws the world: opaque chunks in no particular order with
// depth writes, then transparent chunks back-to-front with depth
// writes off.
type Renderer struct {
	shader *Shader
	atlas  uint32
	meshes map[world.ChunkCoord]*chunkMesh
}

// NewRenderer compiles the world shader and loads the atlas. Both are
// fatal on failure.
func NewRenderer(atlasPath string) (*Renderer, error) {
	shader, err := NewShader(worldVertexShader, worldFragmentShader)
	if err != nil {
		return nil, err
	}
	atlas, err := LoadAtlas(atlasPath)
	if err != nil {
		shader.Release()
		return nil, err
	}
	shader.Use()
	shader.SetInt("texture_atlas", 0)
	return &Renderer{
		shader: shader,
		atlas:  atlas,
		meshes: make(map[world.ChunkCoord]*chunkMesh),
	}, nil
}

// Upload moves a finished chunk's staged vertex buffers onto the GPU.
// Called from the render thread while draining the ready list.
func (r *Renderer) Upload(c *world.Chunk) {
	defer profiling.Track("graphics.Upload")()
	m := r.meshes[c.Coord]
	if m == nil {
		m = &chunkMesh{}
		r.meshes[c.Coord] = m
	}
	m.opaque.upload(c.OpaqueMesh)
	m.transparent.upload(c.TransparentMesh)
}

// Draw renders one frame of world geometry.
func (r *Renderer) Draw(cam *Camera, view mgl32.Mat4, eye mgl32.Vec3) {
	defer profiling.Track("graphics.Draw")()

	projection := cam.ProjectionMatrix()
	cam.UpdateFrustum(projection, view)
	vp := projection.Mul4(view)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.shader.Use()
	r.shader.SetMatrix4("vp_matrix", &vp[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)

	gl.DepthMask(true)
	for coord, m := range r.meshes {
		if m.opaque.count == 0 {
			continue
		}
		min, max := chunkBounds(coord)
		if !cam.IsBoxVisible(min, max) {
			continue
		}
		r.drawMesh(&m.opaque, coord)
	}

	// Transparent chunks draw after opaque, farthest first, with
	// depth writes off so water layers blend instead of occluding.
	type distMesh struct {
		dist  float32
		coord world.ChunkCoord
		mesh  *meshBuffers
	}
	var transparent []distMesh
	for coord, m := range r.meshes {
		if m.transparent.count == 0 {
			continue
		}
		center := mgl32.Vec3{
			float32(coord.X*world.ChunkSizeX) + world.ChunkSizeX/2,
			world.ChunkHeight / 2,
			float32(coord.Z*world.ChunkSizeZ) + world.ChunkSizeZ/2,
		}
		transparent = append(transparent, distMesh{
			dist:  center.Sub(eye).LenSqr(),
			coord: coord,
			mesh:  &m.transparent,
		})
	}
	sort.Slice(transparent, func(i, j int) bool { return transparent[i].dist > transparent[j].dist })

	gl.DepthMask(false)
	for _, t := range transparent {
		min, max := chunkBounds(t.coord)
		if !cam.IsBoxVisible(min, max) {
			continue
		}
		r.drawMesh(t.mesh, t.coord)
	}
	gl.DepthMask(true)
}

func (r *Renderer) drawMesh(m *meshBuffers, coord world.ChunkCoord) {
	model := mgl32.Translate3D(
		float32(coord.X*world.ChunkSizeX), 0, float32(coord.Z*world.ChunkSizeZ),
	)
	r.shader.SetMatrix4("model_matrix", &model[0])
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	gl.BindVertexArray(0)
}

func chunkBounds(coord world.ChunkCoord) (mgl32.Vec3, mgl32.Vec3) {
	min := mgl32.Vec3{
		float32(coord.X * world.ChunkSizeX), 0, float32(coord.Z * world.ChunkSizeZ),
	}
	max := min.Add(mgl32.Vec3{world.ChunkSizeX, world.ChunkHeight, world.ChunkSizeZ})
	return min, max
}

// Shutdown releases every GPU resource the renderer owns.
func (r *Renderer) Shutdown() {
	for _, m := range r.meshes {
		m.opaque.release()
		m.transparent.release()
	}
	r.meshes = make(map[world.ChunkCoord]*chunkMesh)
	if r.atlas != 0 {
		gl.DeleteTextures(1, &r.atlas)
		r.atlas = 0
	}
	r.shader.Release()
}
