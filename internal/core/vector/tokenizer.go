package vector

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTokenLength 詞彙最短長度（以字元計）
const MinTokenLength = 2

// Tokenize 將文字切成詞彙
//
// 先轉小寫，再取連續的字母、數字、組合符號或底線作為一個詞，長度不足 MinTokenLength 的詞會被捨棄。
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= MinTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}
