package refs

import "regexp"

// ordinalIndex maps ordinal surface forms ("3", "3a", "terceira") to
// zero-based positions in the last shown list. Matching happens on
// normalized text, where "3ª" has already folded to "3a".
var ordinalIndex = buildOrdinalIndex()

var ordinalWords = [][]string{
	{"primeira", "primeiro"},
	{"segunda", "segundo"},
	{"terceira", "terceiro"},
	{"quarta", "quarto"},
	{"quinta", "quinto"},
	{"sexta", "sexto"},
	{"setima", "setimo"},
	{"oitava", "oitavo"},
	{"nona", "nono"},
	{"decima", "decimo"},
}

func buildOrdinalIndex() map[string]int {
	index := make(map[string]int)

	for i, words := range ordinalWords {
		digit := rune('1' + i)
		forms := []string{string(digit), string(digit) + "a"}
		if i == 9 {
			forms = []string{"10", "10a"}
		}

		for _, form := range forms {
			index[form] = i
		}
		for _, word := range words {
			index[word] = i
		}
	}

	return index
}

// refPatterns capture the ordinal token of a venue reference. Evaluated
// in order, first match wins.
var refPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\be (?:a|o|da|do|na|no) (\S+)`),
	regexp.MustCompile(`\b(?:a|o|da|do|na|no) (\S+)`),
	regexp.MustCompile(`^(\S+)$`),
}

// attributeWords map follow-up keywords to the attribute asked for.
var attributeWords = []struct {
	attribute string
	keywords  []string
}{
	{"site", []string{"site", "website", "pagina", "link"}},
	{"morada", []string{"morada", "endereco", "localizacao", "onde fica"}},
	{"email", []string{"email", "mail"}},
	{"telefone", []string{"telefone", "contacto", "numero"}},
}
