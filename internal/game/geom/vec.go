// Package geom provides the integer voxel geometry used by structure
// generation: 2D/3D vectors, inclusive axis-aligned boxes, and the four
// horizontal cardinal directions.
package geom

import "fmt"

// Vec2 is an integer point or extent in the horizontal (x/y) plane.
type Vec2 struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Vec3 is an integer voxel position; Z is altitude.
type Vec3 struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

// V2 is a shorthand constructor for Vec2.
func V2(x, y int) Vec2 { return Vec2{X: x, Y: y} }

// V3 is a shorthand constructor for Vec3.
func V3(x, y, z int) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Broadcast returns a Vec2 with both components set to n.
func Broadcast(n int) Vec2 { return Vec2{X: n, Y: n} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * k.
func (v Vec2) Scale(k int) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// AddScalar adds n to both components.
func (v Vec2) AddScalar(n int) Vec2 { return Vec2{v.X + n, v.Y + n} }

// Product returns X * Y.
func (v Vec2) Product() int { return v.X * v.Y }

// ReduceMin returns the smaller component.
func (v Vec2) ReduceMin() int { return min(v.X, v.Y) }

// ReduceMax returns the larger component.
func (v Vec2) ReduceMax() int { return max(v.X, v.Y) }

// WithZ lifts v into 3D at altitude z.
func (v Vec2) WithZ(z int) Vec3 { return Vec3{v.X, v.Y, z} }

func (v Vec2) String() string { return fmt.Sprintf("(%d, %d)", v.X, v.Y) }

// XY drops the altitude.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

func (v Vec3) String() string { return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z) }
