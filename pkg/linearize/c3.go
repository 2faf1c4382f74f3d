package linearize

// Merge computes the C3 linearization of head given its ordered direct
// parents. The linearization func must return the already-computed
// linearization of each parent (the parent first).
func Merge[T comparable](head T, parents []T, linearization func(T) []T) ([]T, error) {
	seqs := make([][]T, 0, len(parents)+1)
	for _, parent := range parents {
		if lin := linearization(parent); len(lin) > 0 {
			seqs = append(seqs, lin)
		}
	}
	if len(parents) > 0 {
		seqs = append(seqs, parents)
	}

	result := []T{head}
	for {
		seqs = dropEmpty(seqs)
		if len(seqs) == 0 {
			return result, nil
		}

		var next T
		found := false
		for _, seq := range seqs {
			if !inTail(seq[0], seqs) {
				next = seq[0]
				found = true
				break
			}
		}
		if !found {
			return nil, NewInconsistentHierarchyError(head, seqs)
		}

		result = append(result, next)
		for i, seq := range seqs {
			if seq[0] == next {
				seqs[i] = seq[1:]
			}
		}
	}
}

// Of computes the linearization of head by walking the graph described by
// parents. Intermediate results are memoized for the duration of the call.
func Of[T comparable](head T, parents func(T) []T) ([]T, error) {
	memo := make(map[T][]T)
	var visit func(T) ([]T, error)
	visit = func(node T) ([]T, error) {
		if lin, ok := memo[node]; ok {
			return lin, nil
		}
		direct := parents(node)
		for _, parent := range direct {
			if _, err := visit(parent); err != nil {
				return nil, err
			}
		}
		lin, err := Merge(node, direct, func(p T) []T { return memo[p] })
		if err != nil {
			return nil, err
		}
		memo[node] = lin
		return lin, nil
	}
	return visit(head)
}

func dropEmpty[T any](seqs [][]T) [][]T {
	out := seqs[:0]
	for _, seq := range seqs {
		if len(seq) > 0 {
			out = append(out, seq)
		}
	}
	return out
}

func inTail[T comparable](candidate T, seqs [][]T) bool {
	for _, seq := range seqs {
		for _, item := range seq[1:] {
			if item == candidate {
				return true
			}
		}
	}
	return false
}
