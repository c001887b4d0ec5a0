package entry

type Pair[K any, V any] struct {
	Key K
	Val V
}
