// core/alphabet/alphabet.go
package alphabet

// NumCodes is the width of the residue code space. Every letter A-Z gets a
// code in [0,26) so emission tables can be indexed directly; letters that are
// not amino-acid symbols keep all-zero emission columns.
const NumCodes = 26

// Unknown is the code assigned to bytes outside A-Z (digits, gaps, '*', ...).
const Unknown = -1

// residues lists the letters accepted as amino-acid symbols: the 20 standard
// residues plus the ambiguity/rare codes B, Z, X and U (selenocysteine).
const residues = "ABCDEFGHIKLMNPQRSTUVWXYZ"

var supported [NumCodes]bool

func init() {
	for i := 0; i < len(residues); i++ {
		supported[residues[i]-'A'] = true
	}
	// J and O are not recognized by the model.
	supported['J'-'A'] = false
	supported['O'-'A'] = false
}

// Code maps a sequence byte to its residue code. Lowercase input is accepted.
// ok is false for bytes outside A-Z; such positions carry code Unknown.
func Code(b byte) (int, bool) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	if b < 'A' || b > 'Z' {
		return Unknown, false
	}
	return int(b - 'A'), true
}

// Supported reports whether a code denotes a letter the model emits.
// Unsupported codes (J, O, Unknown) behave as zero-likelihood observations.
func Supported(code int) bool {
	return code >= 0 && code < NumCodes && supported[code]
}

// Letter is the inverse of Code for valid codes; Unknown renders as 'X'.
func Letter(code int) byte {
	if code < 0 || code >= NumCodes {
		return 'X'
	}
	return byte('A' + code)
}

// Encode converts a raw sequence into residue codes. The second return value
// lists 0-based positions whose byte was not a letter or not a supported
// residue; those positions still receive a code so downstream indexing stays
// full-length.
func Encode(seq []byte) ([]int, []int) {
	codes := make([]int, len(seq))
	var bad []int
	for i, b := range seq {
		c, ok := Code(b)
		codes[i] = c
		if !ok || !supported[c] {
			bad = append(bad, i)
		}
	}
	return codes, bad
}
