package textutil

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

var initialsArgs = func() pinyin.Args {
	a := pinyin.NewArgs()
	a.Style = pinyin.FirstLetter
	return a
}()

// Initials returns the upper-case pinyin initials of a name so that
// 张三 can be found by typing "zs". ASCII letters and digits are kept,
// anything else without a reading is dropped.
func Initials(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToUpper(r))
		case unicode.Is(unicode.Han, r):
			if py := pinyin.Pinyin(string(r), initialsArgs); len(py) > 0 && len(py[0]) > 0 {
				b.WriteString(strings.ToUpper(py[0][0]))
			}
		}
	}
	return b.String()
}
