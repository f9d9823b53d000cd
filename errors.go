package dilithium

import "errors"

// ErrInput is returned when a signature, key, or seed is malformed: wrong
// length, an out-of-range secret coefficient encoding, out-of-order hint
// indices, hint weight over omega, or a post-decode norm check on z that
// fails before the challenge is recomputed.
var ErrInput = errors.New("dilithium: invalid input")

// ErrVerify is returned when every input was well formed but the
// recomputed challenge seed does not match the one embedded in the
// signature.
var ErrVerify = errors.New("dilithium: signature verification failed")

// ErrRandomBytesGeneration is returned when the caller-supplied
// io.Reader failed to produce random bytes, or when the signing loop
// exceeded its defensive iteration cap (a sign of a broken or
// non-random rng, not a normal signing outcome).
var ErrRandomBytesGeneration = errors.New("dilithium: random byte generation failed")
