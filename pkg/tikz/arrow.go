package tikz

// Arrow selects the tip style of a directed path.
type Arrow int

// Arrow tip styles. The token names follow the TikZ arrows library.
const (
	ArrowLine Arrow = iota
	ArrowIn
	ArrowOut
	ArrowInOut
	ArrowReverseIn
	ArrowReverseOut
	ArrowReverseInOut
	ArrowBarIn
	ArrowBarOut
	ArrowBarInOut
	ArrowLatexIn
	ArrowLatexOut
	ArrowLatexInOut
	ArrowLatexPrimeIn
	ArrowLatexPrimeOut
	ArrowLatexPrimeInOut
	ArrowCircleIn
	ArrowCircleOut
	ArrowCircleInOut
)

var arrowTokens = map[Arrow]string{
	ArrowLine:            "-",
	ArrowIn:              "<-",
	ArrowOut:             "->",
	ArrowInOut:           "<->",
	ArrowReverseIn:       ">-",
	ArrowReverseOut:      "-<",
	ArrowReverseInOut:    ">-<",
	ArrowBarIn:           "|-",
	ArrowBarOut:          "-|",
	ArrowBarInOut:        "|-|",
	ArrowLatexIn:         "latex-",
	ArrowLatexOut:        "-latex",
	ArrowLatexInOut:      "latex-latex",
	ArrowLatexPrimeIn:    "latex'-",
	ArrowLatexPrimeOut:   "-latex'",
	ArrowLatexPrimeInOut: "latex'-latex'",
	ArrowCircleIn:        "o-",
	ArrowCircleOut:       "-o",
	ArrowCircleInOut:     "o-o",
}

// Token returns the TikZ arrow specification, e.g. "->" or
// "latex-latex". Unknown values render as the plain line token.
func (a Arrow) Token() string {
	if tok, ok := arrowTokens[a]; ok {
		return tok
	}
	return "-"
}
