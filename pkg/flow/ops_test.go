package flow

import "testing"

func TestOps(t *testing.T) {
	tests := []struct {
		name  string
		build func() Node
		want  float32 // compared at 5 decimal digits
	}{
		{"add", func() Node { return Add(Const(2), Const(3)) }, 5},
		{"sub", func() Node { return Sub(Const(5), Const(3)) }, 2},
		{"mul", func() Node { return Mul(Const(2), Const(3)) }, 6},
		{"div", func() Node { return Div(Const(7), Const(2)) }, 3.5},
		{"neg", func() Node { return Neg(Const(4)) }, -4},
		{"abs", func() Node { return Abs(Const(-4)) }, 4},
		{"min", func() Node { return Min(Const(2), Const(3)) }, 2},
		{"max", func() Node { return Max(Const(2), Const(3)) }, 3},
		{"pow", func() Node { return Pow(Const(2), Const(10)) }, 1024},
		{"sin", func() Node { return Sin(Const(1)) }, 0.84147},
		{"cos", func() Node { return Cos(Const(1)) }, 0.54030},
		{"tan", func() Node { return Tan(Const(1)) }, 1.55741},
		{"sqrt", func() Node { return Sqrt(Const(2)) }, 1.41421},
		{"exp", func() Node { return Exp(Const(1)) }, 2.71828},
		{"ln", func() Node { return Ln(Const(2)) }, 0.69315},
		{"sum", func() Node { return Sum(Const(1), Const(2), Const(3), Const(4)) }, 10},
		{"sum of nothing", func() Node { return Sum() }, 0},
		{"nested", func() Node { return Add(Const(3), Mul(Const(2), Const(7))) }, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.build()
			if got := Round(n.Value(), 5); got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		v      float32
		digits int
		want   float32
	}{
		{"truncating", 1.23456, 2, 1.23},
		{"rounding up", 1.23556, 2, 1.24},
		{"zero digits", 2.4, 0, 2},
		{"half away from zero", -1.5, 0, -2},
		{"negative", -0.566559, 5, -0.56656},
		{"already exact", 3, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.v, tt.digits); got != tt.want {
				t.Errorf("Round(%v, %d) = %v, want %v", tt.v, tt.digits, got, tt.want)
			}
		})
	}
}
