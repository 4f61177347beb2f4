package skeleton

import "fmt"

// defaultPalette cycles when a description omits colors, so two loads of the
// same description always assign the same colors.
var defaultPalette = []string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#7f7f7f",
	"#bcbd22",
	"#17becf",
}

// fillColors returns exactly n colors: the declared ones when present, the
// palette cycle otherwise. A partial or oversized declaration is rejected
// rather than padded, so a description either owns its colors or none.
func fillColors(declared []string, n int, kind string) ([]string, error) {
	if len(declared) == 0 {
		out := make([]string, n)
		for i := range out {
			out[i] = defaultPalette[i%len(defaultPalette)]
		}
		return out, nil
	}
	if len(declared) != n {
		return nil, fmt.Errorf("%d %s colors declared for %d %ss", len(declared), kind, n, kind)
	}
	return append([]string(nil), declared...), nil
}
