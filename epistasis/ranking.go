package epistasis

// rankNode is one node of Ranking's doubly-linked list.
type rankNode struct {
	comb       RiskyCombination
	prev, next *rankNode
}

// Ranking maintains an ordered list of up to N combinations by descending
// accuracy. A purpose-built doubly-linked list, not a balanced tree from
// biogo/store: ties need stable insert-after semantics and eviction must
// hand the evicted entry back to the caller so it can decide what to do
// with it, neither of which a generic ordered-tree container exposes for
// free (Design Notes, §4.5). Not safe for concurrent use — callers running
// a worker pool across tuples must serialise Insert behind a mutex or
// funnel it through a single reducer goroutine (spec §5).
type Ranking struct {
	head, tail *rankNode
	size       int
	maxN       int
}

// NewRanking returns an empty ranking bounded to at most n entries.
func NewRanking(n int) *Ranking {
	return &Ranking{maxN: n}
}

// Len returns the current number of entries.
func (r *Ranking) Len() int { return r.size }

// Entries returns the current ranking, head (highest accuracy) to tail, as
// a freshly allocated slice.
func (r *Ranking) Entries() []RiskyCombination {
	out := make([]RiskyCombination, 0, r.size)
	for n := r.head; n != nil; n = n.next {
		out = append(out, n.comb)
	}
	return out
}

// Insert implements spec §4.10's four cases exactly:
//
//   - Empty ranking: insert, return position 0.
//   - size < N and new score <= tail score: append, return tail position.
//   - new score greater than some existing element's score: insert before
//     the first such element (ties are broken by inserting the new entry
//     after any existing entries with an equal score, i.e. scanning skips
//     elements with score >= newScore); if size now exceeds N, evict the
//     tail and return it alongside the insertion position.
//   - new score <= tail score and size == N: reject, return position -1
//     and no eviction.
func (r *Ranking) Insert(comb RiskyCombination) (position int, evicted *RiskyCombination) {
	node := &rankNode{comb: comb}

	if r.size == 0 {
		r.head, r.tail = node, node
		r.size = 1
		return 0, nil
	}

	tailScore := r.tail.comb.Accuracy

	if r.size < r.maxN && comb.Accuracy <= tailScore {
		node.prev = r.tail
		r.tail.next = node
		r.tail = node
		r.size++
		return r.size - 1, nil
	}

	// Find the first node whose score is strictly less than comb's score;
	// ties among equal scores are skipped so the new entry lands after them.
	var before *rankNode
	pos := 0
	for n := r.head; n != nil; n = n.next {
		if n.comb.Accuracy < comb.Accuracy {
			before = n
			break
		}
		pos++
	}

	if before == nil {
		// comb.Accuracy <= every existing score.
		if r.size == r.maxN {
			return -1, nil
		}
		node.prev = r.tail
		r.tail.next = node
		r.tail = node
		r.size++
		return r.size - 1, nil
	}

	node.next = before
	node.prev = before.prev
	if before.prev != nil {
		before.prev.next = node
	} else {
		r.head = node
	}
	before.prev = node
	r.size++

	if r.size <= r.maxN {
		return pos, nil
	}

	// Exceeded capacity: evict the tail.
	evictedNode := r.tail
	r.tail = evictedNode.prev
	if r.tail != nil {
		r.tail.next = nil
	} else {
		r.head = nil
	}
	r.size--
	return pos, &evictedNode.comb
}
