package dilithium

// sampleNTTPoly generates a uniformly random polynomial in NTT domain by
// rejection sampling over stream128 (rho, s, r) — spec section 4.4, rej_uniform
// driving poly_uniform.
func sampleNTTPoly(rho []byte, s, r byte) nttElement {
	st := newStream128(rho, s, r)

	var buf [168]byte // SHAKE-128 rate; also the AES refill granularity
	var a nttElement
	j := 0

	for {
		st.squeeze(buf[:])
		for i := 0; i < len(buf) && j < n; i += 3 {
			// Extract 24 bits, mask to 23 bits
			v := uint32(buf[i]) | uint32(buf[i+1])<<8 | (uint32(buf[i+2])&0x7f)<<16
			if v < q {
				a[j] = fieldElement(v)
				j++
			}
		}
		if j >= n {
			return a
		}
	}
}

// sampleBoundedPoly generates a polynomial with coefficients in [-eta, eta]
// by rejection sampling over stream256(seed, nonce) — spec section 4.4, rej_eta.
func sampleBoundedPoly(seed []byte, eta int, nonce uint16) ringElement {
	st := newStream256(seed, nonce)

	var buf [136]byte // SHAKE-256 rate
	var a ringElement
	j := 0
	offset := 0

	st.squeeze(buf[:])

	for j < n {
		if offset >= len(buf) {
			st.squeeze(buf[:])
			offset = 0
		}

		z0 := buf[offset] & 0x0f
		z1 := buf[offset] >> 4
		offset++

		if eta == 2 {
			// valid nibble values are 0-14, folded mod 5 into {0..4} -> {2..-2}
			if z0 < 15 {
				z0 = z0 - (z0/5)*5
				a[j] = fieldSub(2, fieldElement(z0))
				j++
			}
			if j < n && z1 < 15 {
				z1 = z1 - (z1/5)*5
				a[j] = fieldSub(2, fieldElement(z1))
				j++
			}
		} else { // eta == 4
			if z0 <= 8 {
				a[j] = fieldSub(4, fieldElement(z0))
				j++
			}
			if j < n && z1 <= 8 {
				a[j] = fieldSub(4, fieldElement(z1))
				j++
			}
		}
	}
	return a
}

// sampleChallenge generates the challenge polynomial c with tau non-zero
// coefficients in {-1, 1}, via a Fisher-Yates-style rejection shuffle over
// the 32-byte challenge seed c̃ — spec section 4.4, poly_challenge.
func sampleChallenge(seed []byte, tau int) ringElement {
	st := newChallengeStream(seed)

	var buf [136]byte
	st.squeeze(buf[:])

	// First 8 bytes encode sign bits
	var signs uint64
	for i := 0; i < 8; i++ {
		signs |= uint64(buf[i]) << (8 * i)
	}
	offset := 8

	var c ringElement
	for i := n - tau; i < n; i++ {
		var j byte
		for {
			if offset >= len(buf) {
				st.squeeze(buf[:])
				offset = 0
			}
			j = buf[offset]
			offset++
			if int(j) <= i {
				break
			}
		}

		c[i] = c[j]
		if signs&1 == 0 {
			c[j] = 1
		} else {
			c[j] = q - 1 // -1 mod q
		}
		signs >>= 1
	}
	return c
}

// expandMask generates the masking polynomial y with coefficients in
// (-gamma1, gamma1] — spec section 4.4, poly_uniform_gamma1. It squeezes
// exactly POLYZ_PACKEDBYTES bytes and unpacks them directly; the
// distribution is uniform by construction of the unpacker.
func expandMask(seed []byte, nonce uint16, gamma1Bits int) ringElement {
	st := newStream256(seed, nonce)

	var f ringElement
	if gamma1Bits == 17 {
		var buf [576]byte // 18 bits * 256 coeffs / 8
		st.squeeze(buf[:])
		unpackZ17Mask(buf[:], &f)
	} else { // gamma1Bits == 19
		var buf [640]byte // 20 bits * 256 coeffs / 8
		st.squeeze(buf[:])
		unpackZ19Mask(buf[:], &f)
	}
	return f
}

// unpackZ17Mask unpacks 256 coefficients encoded as 18-bit signed values
// into the (-2^17, 2^17] range used by expandMask for mode 2.
func unpackZ17Mask(b []byte, f *ringElement) {
	const gamma1 = 1 << 17
	const mask = (1 << 18) - 1
	for i := 0; i < n; i += 4 {
		x := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
			uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
		f[i] = fieldSub(fieldElement(gamma1), fieldElement(x&mask))
		f[i+1] = fieldSub(fieldElement(gamma1), fieldElement((x>>18)&mask))
		f[i+2] = fieldSub(fieldElement(gamma1), fieldElement((x>>36)&mask))
		x2 := uint64(b[8])
		f[i+3] = fieldSub(fieldElement(gamma1), fieldElement(((x>>54)|(x2<<10))&mask))
		b = b[9:]
	}
}

// unpackZ19Mask unpacks 256 coefficients encoded as 20-bit signed values
// into the (-2^19, 2^19] range used by expandMask for modes 3 and 5.
func unpackZ19Mask(b []byte, f *ringElement) {
	const gamma1 = 1 << 19
	const mask = (1 << 20) - 1
	for i := 0; i < n; i += 4 {
		x := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
			uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
		f[i] = fieldSub(fieldElement(gamma1), fieldElement(x&mask))
		f[i+1] = fieldSub(fieldElement(gamma1), fieldElement((x>>20)&mask))
		f[i+2] = fieldSub(fieldElement(gamma1), fieldElement((x>>40)&mask))
		// the last coefficient's top bits come from x, the rest from the next
		// two bytes — mask whichever coefficient was just decoded (f[i+3]).
		x2 := uint64(b[8]) | uint64(b[9])<<8
		f[i+3] = fieldSub(fieldElement(gamma1), fieldElement(((x>>60)|(x2<<4))&mask))
		b = b[10:]
	}
}
