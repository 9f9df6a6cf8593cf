package units

import (
	"math"

	"github.com/golang/geo/r2"
)

// Vector2 is a 2D vector whose components share the unit tag U.
type Vector2[U Unit] struct {
	X Scalar[U] `json:"x"`
	Y Scalar[U] `json:"y"`
}

// V2 constructs a Vector2 from untagged components.
func V2[U Unit](x, y float64) Vector2[U] {
	return Vector2[U]{Scalar[U](x), Scalar[U](y)}
}

// V2FromR2 tags an r2.Point with unit U.
func V2FromR2[U Unit](p r2.Point) Vector2[U] {
	return Vector2[U]{Scalar[U](p.X), Scalar[U](p.Y)}
}

// R2 returns the untagged r2.Point. Raw geometry helpers operate on r2 and
// re-tag at the boundary.
func (v Vector2[U]) R2() r2.Point {
	return r2.Point{X: float64(v.X), Y: float64(v.Y)}
}

// Add returns v + o.
func (v Vector2[U]) Add(o Vector2[U]) Vector2[U] {
	return Vector2[U]{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2[U]) Sub(o Vector2[U]) Vector2[U] {
	return Vector2[U]{v.X - o.X, v.Y - o.Y}
}

// Neg returns -v.
func (v Vector2[U]) Neg() Vector2[U] {
	return Vector2[U]{-v.X, -v.Y}
}

// Mul scales both components by a dimensionless factor.
func (v Vector2[U]) Mul(k float64) Vector2[U] {
	return Vector2[U]{v.X.Mul(k), v.Y.Mul(k)}
}

// Div divides both components by a dimensionless factor.
func (v Vector2[U]) Div(k float64) Vector2[U] {
	return Vector2[U]{v.X.Div(k), v.Y.Div(k)}
}

// MulComponents returns the componentwise product of v and o.
func (v Vector2[U]) MulComponents(o Vector2[U]) Vector2[U] {
	return Vector2[U]{v.X * o.X, v.Y * o.Y}
}

// DivComponents returns the componentwise quotient of v and o.
func (v Vector2[U]) DivComponents(o Vector2[U]) Vector2[U] {
	return Vector2[U]{v.X / o.X, v.Y / o.Y}
}

// Dot returns the untagged dot product of v and o.
func (v Vector2[U]) Dot(o Vector2[U]) float64 {
	return float64(v.X)*float64(o.X) + float64(v.Y)*float64(o.Y)
}

// Cross returns the untagged 2D cross product (z component) of v and o.
func (v Vector2[U]) Cross(o Vector2[U]) float64 {
	return float64(v.X)*float64(o.Y) - float64(v.Y)*float64(o.X)
}

// Length returns the Euclidean norm of v.
func (v Vector2[U]) Length() Scalar[U] {
	return Scalar[U](math.Hypot(float64(v.X), float64(v.Y)))
}

// LengthSquared returns the untagged squared norm of v.
func (v Vector2[U]) LengthSquared() float64 {
	return float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y)
}

// Distance returns the Euclidean distance between v and o.
func (v Vector2[U]) Distance(o Vector2[U]) Scalar[U] {
	return v.Sub(o).Length()
}

// Normalized returns v scaled to unit length. A zero vector yields NaN
// components, matching IEEE division semantics.
func (v Vector2[U]) Normalized() Vector2[U] {
	return v.Div(float64(v.Length()))
}

// LerpV2 linearly interpolates between vectors a and b by t.
func LerpV2[U Unit](a, b Vector2[U], t float64) Vector2[U] {
	return Vector2[U]{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// V2MappedTo reinterprets a vector under a different unit tag, componentwise.
func V2MappedTo[To, From Unit](v Vector2[From]) Vector2[To] {
	return Vector2[To]{MappedTo[To](v.X), MappedTo[To](v.Y)}
}
