package num

import (
	"github.com/holiman/uint256"
)

// Indices and growth factors are 27-decimal fixed point ("ray"), the
// precision the underlying pool reports its own indices in. Every
// conversion here has an explicit rounding direction; callers pick the
// one the accounting policy requires (floor for what a user receives or
// gives up, ceil for what the protocol still owes).

// MaxBps is the denominator for all basis-point fractions (reserve
// factor, p2p index cursor).
const MaxBps uint64 = 10_000

var rayUnit = uint256.MustFromDecimal("1000000000000000000000000000") // 10^27

// Ray returns 1.0 as a ray (10^27).
func Ray() *Uint {
	return &Uint{*new(uint256.Int).Set(rayUnit)}
}

// IsRay reports whether z is exactly 1.0 in ray fixed point.
func IsRay(z *Uint) bool {
	return z.u.Eq(rayUnit)
}

func mulDivDown(x, y, d *Uint) *Uint {
	res, _ := new(uint256.Int).MulDivOverflow(&x.u, &y.u, &d.u)
	return &Uint{*res}
}

func mulDivUp(x, y, d *Uint) *Uint {
	res, _ := new(uint256.Int).MulDivOverflow(&x.u, &y.u, &d.u)
	rem := new(uint256.Int).MulMod(&x.u, &y.u, &d.u)
	if !rem.IsZero() {
		res.AddUint64(res, 1)
	}
	return &Uint{*res}
}

// RayMulDown returns floor(x * y / RAY).
func RayMulDown(x, y *Uint) *Uint {
	return mulDivDown(x, y, Ray())
}

// RayMulUp returns ceil(x * y / RAY).
func RayMulUp(x, y *Uint) *Uint {
	return mulDivUp(x, y, Ray())
}

// RayDivDown returns floor(x * RAY / y). Division by zero yields zero,
// matching the underlying uint256 semantics; callers guard the zero case.
func RayDivDown(x, y *Uint) *Uint {
	return mulDivDown(x, Ray(), y)
}

// RayDivUp returns ceil(x * RAY / y).
func RayDivUp(x, y *Uint) *Uint {
	return mulDivUp(x, Ray(), y)
}

// BpsMulDown returns floor(x * bps / 10000).
func BpsMulDown(x *Uint, bps uint64) *Uint {
	return mulDivDown(x, NewUint(bps), NewUint(MaxBps))
}

// WeightedAvgBps returns floor(((MaxBps-weight)*a + weight*b) / MaxBps),
// the value sitting weight/MaxBps of the way from a to b.
func WeightedAvgBps(a, b *Uint, weightBps uint64) *Uint {
	if weightBps > MaxBps {
		weightBps = MaxBps
	}
	wa := UintZero().Mul(a, NewUint(MaxBps-weightBps))
	wb := UintZero().Mul(b, NewUint(weightBps))
	return UintZero().Div(wa.Add(wa, wb), NewUint(MaxBps))
}

// DecimalFromRay renders a ray as a plain decimal number, e.g. the ray
// 1.5*10^27 becomes "1.5". Rendering only, never used in accounting.
func DecimalFromRay(z *Uint) Decimal {
	return DecimalFromUint(z).Shift(-27)
}
