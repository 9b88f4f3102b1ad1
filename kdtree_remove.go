package spatial

// Remove deletes the first node equal to p within Epsilon on p's descent
// path and reports whether one was found.
//
// Deletion replaces the node with the node holding the minimum coordinate on
// the deleted node's split axis from its right subtree, then deletes that
// node recursively. When there is no right subtree the minimum is taken from
// the left subtree and the remaining left subtree becomes the right one;
// taking the minimum (not the maximum) keeps ties on the right as the split
// invariant requires. Leaves are simply unlinked.
func (t *KdTree[V]) Remove(p Point) (bool, error) {
	if err := checkDims(p, t.k); err != nil {
		return false, err
	}
	link, depth := t.locate(p)
	if *link == nil {
		return false, nil
	}
	t.deleteAt(link, depth)
	t.count--
	return true, nil
}

// deleteAt removes the node held in *link, which sits at the given depth.
func (t *KdTree[V]) deleteAt(link **kdNode[V], depth int) {
	n := *link
	axis := depth % t.k
	switch {
	case n.right != nil:
		minLink, minDepth := t.findMin(&n.right, axis, depth+1)
		n.point, n.value = (*minLink).point, (*minLink).value
		t.deleteAt(minLink, minDepth)
	case n.left != nil:
		minLink, minDepth := t.findMin(&n.left, axis, depth+1)
		n.point, n.value = (*minLink).point, (*minLink).value
		t.deleteAt(minLink, minDepth)
		n.left, n.right = nil, n.left
	default:
		*link = nil
	}
}

// findMin returns the slot of the node with the smallest coordinate on axis
// in the non-empty subtree at *link, together with that node's depth. Below
// nodes splitting on axis only the left subtree can hold the minimum; below
// any other node both subtrees must be searched.
func (t *KdTree[V]) findMin(link **kdNode[V], axis, depth int) (**kdNode[V], int) {
	n := *link
	if depth%t.k == axis {
		if n.left == nil {
			return link, depth
		}
		return t.findMin(&n.left, axis, depth+1)
	}

	best, bestDepth := link, depth
	for _, child := range [2]**kdNode[V]{&n.left, &n.right} {
		if *child == nil {
			continue
		}
		l, d := t.findMin(child, axis, depth+1)
		if (*l).point[axis] < (*best).point[axis] {
			best, bestDepth = l, d
		}
	}
	return best, bestDepth
}
