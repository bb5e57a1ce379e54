// Package textnorm normaliza texto para busca: remove acentos e baixa a caixa,
// para que "Paletização" case com "paletizacao" nos filtros de listagem.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)), // remove marcas de acentuação
	norm.NFC,
)

// Fold devolve o texto sem acentos e em minúsculas.
// Em caso de erro de transformação devolve apenas o lower-case original.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
