package snapdex

import "strings"

const upperhex = "0123456789ABCDEF"

// EncodeURI percent-encodes a relative path for use as a URL. Letters,
// digits and the characters ;,/?:@&=+$-_.!~*'()# are kept as-is; every other
// byte of the UTF-8 encoding becomes %XX with uppercase hex digits.
func EncodeURI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldKeep(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func shouldKeep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte(";,/?:@&=+$-_.!~*'()#", c) >= 0
}
