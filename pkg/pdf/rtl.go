package pdf

import "strings"

// visualRTL раскладывает смешанную строку для движка без поддержки bidi:
// порядок сегментов меняется на обратный, буквы внутри ивритских сегментов
// тоже, а латиница и цифры остаются как есть.
func visualRTL(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}

	type segment struct {
		text []rune
		rtl  bool
	}

	segments := make([]segment, 0, 4)
	current := segment{rtl: isHebrew(runes[0])}

	for _, r := range runes {
		rtl := isHebrew(r)
		if isNeutral(r) {
			// Пробелы и знаки препинания липнут к текущему сегменту.
			rtl = current.rtl
		}
		if rtl != current.rtl && len(current.text) > 0 {
			segments = append(segments, current)
			current = segment{rtl: rtl}
		}
		current.rtl = rtl
		current.text = append(current.text, r)
	}
	segments = append(segments, current)

	var sb strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg.rtl {
			for j := len(seg.text) - 1; j >= 0; j-- {
				sb.WriteRune(seg.text[j])
			}
		} else {
			sb.WriteString(strings.TrimSpace(string(seg.text)))
			sb.WriteRune(' ')
		}
	}
	return strings.TrimSpace(sb.String())
}

func isHebrew(r rune) bool {
	return r >= 0x0590 && r <= 0x05FF
}

func isNeutral(r rune) bool {
	switch r {
	case ' ', ',', '.', ':', ';', '-', '(', ')', '|', '"', '\'':
		return true
	}
	return false
}
