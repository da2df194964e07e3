package stock

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold quita acentos, colapsa espacios y pasa a mayúsculas ("  quebra de garrafa " -> "QUEBRA DE GARRAFA").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.Join(strings.Fields(out), " ")
	return cases.Upper(language.Und).String(out)
}

// NormalizeCode normaliza códigos de catálogo (sin acentos ni espacios, mayúsculas).
func NormalizeCode(s string) string {
	return strings.ReplaceAll(Fold(s), " ", "")
}

// NormalizeReason clave de motivo: plegado y con "_" entre palabras ("vencido " -> "VENCIDO").
func NormalizeReason(s string) string {
	return strings.ReplaceAll(Fold(s), " ", "_")
}

var unitAliases = map[string]string{
	"unid":      "un",
	"und":       "un",
	"unidade":   "un",
	"unidad":    "un",
	"porc":      "porcao",
	"porcion":   "porcao",
	"litro":     "l",
	"lt":        "l",
	"mililitro": "ml",
}

// NormalizeUnit unidad de alimento en minúsculas, sin acentos y con sinónimos resueltos.
// Vacío -> "un". No valida contra el catálogo de unidades.
func NormalizeUnit(s string) string {
	u := strings.ToLower(strings.ReplaceAll(Fold(s), " ", ""))
	if u == "" {
		return "un"
	}
	if canon, ok := unitAliases[u]; ok {
		return canon
	}
	return u
}
