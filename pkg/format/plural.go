package format

// Plural picks the Czech plural form for n: 1 takes one, 2 to 4 take few and
// everything else (0, negatives, 5 and up) takes many.
func Plural(n int, one, few, many string) string {
	switch {
	case n == 1:
		return one
	case n >= 2 && n <= 4:
		return few
	default:
		return many
	}
}
