// Package dual implements generalized dual numbers that carry a value and its
// first n derivatives with respect to a single independent variable.
// Elementary functions differentiate in closed form through the chain rule,
// which makes the package a convenient oracle for checking hand-derived
// derivative formulas to arbitrary order. It is not used on any hot path.
package dual

import "math"

// Number holds a value and its derivatives: vals[k] is the k-th derivative.
// Numbers are immutable; all operations return fresh values.
type Number struct {
	vals []float64
}

// Var creates a dual number for the independent variable itself, carrying
// derivatives up to the given order.
func Var(x float64, order int) Number {
	vals := make([]float64, order+1)
	vals[0] = x
	if order >= 1 {
		vals[1] = 1
	}
	return Number{vals}
}

// Const creates a dual number with all derivatives zero.
func Const(c float64, order int) Number {
	vals := make([]float64, order+1)
	vals[0] = c
	return Number{vals}
}

// Value returns the undifferentiated value.
func (d Number) Value() float64 { return d.vals[0] }

// Derivative returns the k-th derivative. k = 0 is the value itself.
func (d Number) Derivative(k int) float64 { return d.vals[k] }

// Order returns the highest derivative order carried.
func (d Number) Order() int { return len(d.vals) - 1 }

// head truncates to one order lower, tail is the derivative sequence shifted
// down; together they drive the chain-rule recursion (f∘x)' = f'(x)·x'.
func (d Number) head() Number { return Number{d.vals[:len(d.vals)-1]} }
func (d Number) tail() Number { return Number{d.vals[1:]} }

func (d Number) isReal() bool { return len(d.vals) == 1 }

func cons(value float64, tail Number) Number {
	vals := make([]float64, len(tail.vals)+1)
	vals[0] = value
	copy(vals[1:], tail.vals)
	return Number{vals}
}

// Add returns d + o. Operands must carry the same order.
func (d Number) Add(o Number) Number {
	vals := make([]float64, len(d.vals))
	for i := range vals {
		vals[i] = d.vals[i] + o.vals[i]
	}
	return Number{vals}
}

// Sub returns d - o.
func (d Number) Sub(o Number) Number {
	vals := make([]float64, len(d.vals))
	for i := range vals {
		vals[i] = d.vals[i] - o.vals[i]
	}
	return Number{vals}
}

// Neg returns -d.
func (d Number) Neg() Number {
	vals := make([]float64, len(d.vals))
	for i := range vals {
		vals[i] = -d.vals[i]
	}
	return Number{vals}
}

// Scale returns d multiplied by a constant.
func (d Number) Scale(k float64) Number {
	vals := make([]float64, len(d.vals))
	for i := range vals {
		vals[i] = d.vals[i] * k
	}
	return Number{vals}
}

// Mul returns d * o via the product rule.
func (d Number) Mul(o Number) Number {
	if d.isReal() || o.isReal() {
		return Number{[]float64{d.vals[0] * o.vals[0]}}
	}
	return cons(d.vals[0]*o.vals[0],
		d.tail().Mul(o.head()).Add(d.head().Mul(o.tail())))
}

// Div returns d / o via the quotient rule.
func (d Number) Div(o Number) Number {
	if d.isReal() || o.isReal() {
		return Number{[]float64{d.vals[0] / o.vals[0]}}
	}
	num := d.tail().Mul(o.head()).Sub(d.head().Mul(o.tail()))
	return cons(d.vals[0]/o.vals[0], num.Div(o.head().Mul(o.head())))
}

// Sin returns sin(d).
func Sin(d Number) Number {
	if d.isReal() {
		return Number{[]float64{math.Sin(d.vals[0])}}
	}
	return cons(math.Sin(d.vals[0]), Cos(d.head()).Mul(d.tail()))
}

// Cos returns cos(d).
func Cos(d Number) Number {
	if d.isReal() {
		return Number{[]float64{math.Cos(d.vals[0])}}
	}
	return cons(math.Cos(d.vals[0]), Sin(d.head()).Neg().Mul(d.tail()))
}

// Tan returns tan(d).
func Tan(d Number) Number {
	if d.isReal() {
		return Number{[]float64{math.Tan(d.vals[0])}}
	}
	c := Cos(d.head())
	return cons(math.Tan(d.vals[0]), d.tail().Div(c.Mul(c)))
}

// Atan returns atan(d).
func Atan(d Number) Number {
	if d.isReal() {
		return Number{[]float64{math.Atan(d.vals[0])}}
	}
	h := d.head()
	one := Const(1, h.Order())
	return cons(math.Atan(d.vals[0]), d.tail().Div(one.Add(h.Mul(h))))
}

// Exp returns e^d.
func Exp(d Number) Number {
	if d.isReal() {
		return Number{[]float64{math.Exp(d.vals[0])}}
	}
	return cons(math.Exp(d.vals[0]), Exp(d.head()).Mul(d.tail()))
}

// Log returns the natural logarithm of d.
func Log(d Number) Number {
	if d.isReal() {
		return Number{[]float64{math.Log(d.vals[0])}}
	}
	return cons(math.Log(d.vals[0]), d.tail().Div(d.head()))
}

// Sqrt returns the square root of d.
func Sqrt(d Number) Number {
	if d.isReal() {
		return Number{[]float64{math.Sqrt(d.vals[0])}}
	}
	return cons(math.Sqrt(d.vals[0]), d.tail().Div(Sqrt(d.head()).Scale(2)))
}

// Pow returns d raised to a constant exponent. The recursion stops at
// exponent zero so monomials stay finite at a zero base instead of walking
// into negative powers of it.
func Pow(d Number, k float64) Number {
	if d.isReal() {
		return Number{[]float64{math.Pow(d.vals[0], k)}}
	}
	if k == 0 {
		return Const(1, d.Order())
	}
	return cons(math.Pow(d.vals[0], k),
		Pow(d.head(), k-1).Scale(k).Mul(d.tail()))
}
