package flow

import "math"

// Standard combinators. Each is a thin wrapper over Define so formula code
// reads as arithmetic; anything not covered here composes through Define
// directly.

// Add returns a node computing x + y.
func Add(x, y Node) Node {
	return Define2(x, y, func(a, b float32) float32 { return a + b })
}

// Sub returns a node computing x - y.
func Sub(x, y Node) Node {
	return Define2(x, y, func(a, b float32) float32 { return a - b })
}

// Mul returns a node computing x * y.
func Mul(x, y Node) Node {
	return Define2(x, y, func(a, b float32) float32 { return a * b })
}

// Div returns a node computing x / y. Division by zero follows IEEE 754:
// the result is ±Inf or NaN, and it caches like any other value.
func Div(x, y Node) Node {
	return Define2(x, y, func(a, b float32) float32 { return a / b })
}

// Neg returns a node computing -x.
func Neg(x Node) Node {
	return Define1(x, func(v float32) float32 { return -v })
}

// Abs returns a node computing |x|.
func Abs(x Node) Node {
	return Define1(x, func(v float32) float32 {
		return float32(math.Abs(float64(v)))
	})
}

// Min returns a node computing the smaller of x and y.
func Min(x, y Node) Node {
	return Define2(x, y, func(a, b float32) float32 { return min(a, b) })
}

// Max returns a node computing the larger of x and y.
func Max(x, y Node) Node {
	return Define2(x, y, func(a, b float32) float32 { return max(a, b) })
}

// Sin returns a node computing sin(x), x in radians.
func Sin(x Node) Node {
	return Define1(x, func(v float32) float32 {
		return float32(math.Sin(float64(v)))
	})
}

// Cos returns a node computing cos(x), x in radians.
func Cos(x Node) Node {
	return Define1(x, func(v float32) float32 {
		return float32(math.Cos(float64(v)))
	})
}

// Tan returns a node computing tan(x), x in radians.
func Tan(x Node) Node {
	return Define1(x, func(v float32) float32 {
		return float32(math.Tan(float64(v)))
	})
}

// Sqrt returns a node computing √x.
func Sqrt(x Node) Node {
	return Define1(x, func(v float32) float32 {
		return float32(math.Sqrt(float64(v)))
	})
}

// Exp returns a node computing e^x.
func Exp(x Node) Node {
	return Define1(x, func(v float32) float32 {
		return float32(math.Exp(float64(v)))
	})
}

// Ln returns a node computing the natural logarithm of x.
func Ln(x Node) Node {
	return Define1(x, func(v float32) float32 {
		return float32(math.Log(float64(v)))
	})
}

// Pow returns a node computing x^y.
func Pow(x, y Node) Node {
	return Define2(x, y, func(a, b float32) float32 {
		return float32(math.Pow(float64(a), float64(b)))
	})
}

// Sum returns a node computing the sum of all terms. Sum() is the zero node.
func Sum(terms ...Node) Node {
	return Define(terms, func(vals []float32) float32 {
		var s float32
		for _, v := range vals {
			s += v
		}
		return s
	})
}

// Round rounds v to the given number of decimal digits, halves away from
// zero. Derived values keep full float32 precision internally; Round is for
// display and comparisons.
func Round(v float32, digits int) float32 {
	scale := math.Pow(10, float64(digits))
	return float32(math.Round(float64(v)*scale) / scale)
}
