package solana

import (
	"filippo.io/edwards25519/field"
)

// d = -121665/121666, little-endian
var curveD, _ = new(field.Element).SetBytes([]byte{
	0xa3, 0x78, 0x59, 0x13, 0xca, 0x4d, 0xeb, 0x75,
	0xab, 0xd8, 0x41, 0x41, 0x4d, 0x0a, 0x70, 0x00,
	0x98, 0xe8, 0x79, 0x77, 0x79, 0x40, 0xc7, 0x8c,
	0x73, 0xfe, 0x6f, 0x2b, 0xee, 0x6c, 0x03, 0x52,
})

var feOne = new(field.Element).One()

// IsOnCurve checks if 'b' is the compressed encoding of a point on the
// ed25519 curve. The sign bit is ignored; only the existence of an x for the
// encoded y is tested.
func IsOnCurve(b []byte) bool {
	if len(b) != PublicKeyLength {
		return false
	}
	y, err := new(field.Element).SetBytes(b)
	if err != nil {
		return false
	}

	// -x² + y² = 1 + dx²y²  =>  x² = (y² - 1) / (dy² + 1) = u / v
	y2 := new(field.Element).Square(y)
	u := new(field.Element).Subtract(y2, feOne)
	v := new(field.Element).Multiply(y2, curveD)
	v.Add(v, feOne)

	// r = u·v³·(u·v⁷)^((p-5)/8)
	v3 := new(field.Element).Square(v)
	v3.Multiply(v3, v)
	v7 := new(field.Element).Square(v3)
	v7.Multiply(v7, v)
	uv7 := new(field.Element).Multiply(u, v7)
	r := new(field.Element).Pow22523(uv7)
	r.Multiply(r, v3)
	r.Multiply(r, u)

	// a root exists iff v·r² = ±u
	check := new(field.Element).Square(r)
	check.Multiply(check, v)
	negU := new(field.Element).Negate(u)
	return check.Equal(u) == 1 || check.Equal(negU) == 1
}
