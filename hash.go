package atomcss

// hashAlphabet has exactly 64 symbols, all valid in CSS class names.
const hashAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-_"

// hash maps data to a 5 character token. Class names derived from the
// same rule text must match across processes, so the algorithm is
// fixed: accumulator seeded at 313, multiplied by 311 per codepoint
// with uint32 wraparound, then five 6-bit fields taken at bit offsets
// 0, 6, 12, 18 and 24 and looked up in the alphabet, low bits first.
func hash(data string) string {
	var h uint32 = 313
	for _, r := range data {
		h = h*311 + uint32(r)
	}
	var tok [5]byte
	for i := range tok {
		tok[i] = hashAlphabet[(h>>(6*uint(i)))&0x3F]
	}
	return string(tok[:])
}
