package world

import (
	"fmt"
	"image"
	"image/color"

	"github.com/Carmen-Shannon/legion/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TerrainMaterial is the material bound before terrain cells are drawn.
const TerrainMaterial = "world/terrain"

// Drawer is the part of the draw API the world pass emits through.
type Drawer interface {
	BindMaterial(name string)
	DrawPrimitives(kind common.PrimitiveType, vertices []common.Vertex) error
}

// Terrain is the drawable ground of a level.
type Terrain interface {
	// Draw emits every cell that intersects frustum. A nil frustum draws everything.
	//
	// Parameters:
	//   - drawer: the draw API to emit through
	//   - frustum: the world pass frustum used for culling
	//
	// Returns:
	//   - int: the number of cells submitted
	//   - error: an error if the drawer rejected the primitives
	Draw(drawer Drawer, frustum *common.Frustum) (int, error)
}

// Heightfield is a regular grid of heights in world space, starting at the origin and extending along +X and +Y.
type Heightfield struct {
	cols, rows int
	cell       float32
	heights    []float32

	low  common.Color
	high common.Color
}

var _ Terrain = &Heightfield{}

// NewFlatHeightfield creates a heightfield with every sample at zero.
//
// Parameters:
//   - cols: the number of cells along X
//   - rows: the number of cells along Y
//   - cell: the cell size in world units
//
// Returns:
//   - *Heightfield: the heightfield
func NewFlatHeightfield(cols, rows int, cell float32) *Heightfield {
	cols, rows = max(cols, 1), max(rows, 1)
	return &Heightfield{
		cols:    cols,
		rows:    rows,
		cell:    cell,
		heights: make([]float32, (cols+1)*(rows+1)),
		low:     common.Color{R: 60, G: 72, B: 52, A: 255},
		high:    common.Color{R: 170, G: 165, B: 150, A: 255},
	}
}

// NewHeightfieldFromImage samples an image as a heightmap: one sample per pixel, luminance scaled to heightScale.
// Image row 0 maps to the far edge so the map reads the same way it looks in an image viewer from above.
//
// Parameters:
//   - img: the heightmap image
//   - cell: the distance between samples in world units
//   - heightScale: the height of a white pixel
//
// Returns:
//   - *Heightfield: the heightfield
//   - error: an error if the image is smaller than 2x2 pixels
func NewHeightfieldFromImage(img image.Image, cell, heightScale float32) (*Heightfield, error) {
	b := img.Bounds()
	if b.Dx() < 2 || b.Dy() < 2 {
		return nil, fmt.Errorf("heightmap must be at least 2x2 pixels, got %dx%d", b.Dx(), b.Dy())
	}

	h := NewFlatHeightfield(b.Dx()-1, b.Dy()-1, cell)
	for py := 0; py < b.Dy(); py++ {
		row := b.Dy() - 1 - py
		for px := 0; px < b.Dx(); px++ {
			g := color.Gray16Model.Convert(img.At(b.Min.X+px, b.Min.Y+py)).(color.Gray16)
			h.heights[row*(h.cols+1)+px] = float32(g.Y) / 0xffff * heightScale
		}
	}
	return h, nil
}

// Size returns the number of cells along X and Y.
func (h *Heightfield) Size() (cols, rows int) {
	return h.cols, h.rows
}

// Sample returns the height stored at a grid corner.
func (h *Heightfield) Sample(col, row int) float32 {
	col = min(max(col, 0), h.cols)
	row = min(max(row, 0), h.rows)
	return h.heights[row*(h.cols+1)+col]
}

func (h *Heightfield) Draw(drawer Drawer, frustum *common.Frustum) (int, error) {
	peak := float32(0)
	for _, v := range h.heights {
		peak = max(peak, v)
	}
	radius := math32.Sqrt(2*h.cell*h.cell+peak*peak) / 2

	vertices := make([]common.Vertex, 0, h.cols*h.rows*4)
	drawn := 0
	for row := 0; row < h.rows; row++ {
		for col := 0; col < h.cols; col++ {
			corners := [4]mgl32.Vec3{
				h.corner(col, row),
				h.corner(col+1, row),
				h.corner(col+1, row+1),
				h.corner(col, row+1),
			}
			if frustum != nil {
				center := corners[0].Add(corners[2]).Mul(0.5)
				if !frustum.ContainsSphere(center, radius) {
					continue
				}
			}
			uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
			for i, p := range corners {
				vertices = append(vertices, common.Vertex{Position: p, Color: h.shade(p.Z(), peak), TexCoord: uvs[i]})
			}
			drawn++
		}
	}
	if drawn == 0 {
		return 0, nil
	}

	drawer.BindMaterial(TerrainMaterial)
	if err := drawer.DrawPrimitives(common.PrimitiveQuads, vertices); err != nil {
		return 0, fmt.Errorf("draw terrain: %w", err)
	}
	return drawn, nil
}

func (h *Heightfield) corner(col, row int) mgl32.Vec3 {
	return mgl32.Vec3{float32(col) * h.cell, float32(row) * h.cell, h.Sample(col, row)}
}

// shade blends between the low and high colors by relative height.
func (h *Heightfield) shade(z, peak float32) common.Color {
	t := float32(0)
	if peak > 0 {
		t = z / peak
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*t)
	}
	return common.Color{R: lerp(h.low.R, h.high.R), G: lerp(h.low.G, h.high.G), B: lerp(h.low.B, h.high.B), A: 255}
}
