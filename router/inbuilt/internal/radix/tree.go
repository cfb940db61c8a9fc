package radix

import (
	"strings"

	"github.com/indigo-web/petite/http/method"
)

// Node is a prefix tree node keyed by whole path segments. Each node may have a single
// wildcard child, shared by every wildcard segment registered at this position, so the
// last registered wildcard name wins.
type Node[T any] struct {
	handlers map[method.Method]T
	children map[string]*Node[T]
	wildcard string
	dyn      *Node[T]
}

func New[T any]() *Node[T] {
	return &Node[T]{
		handlers: make(map[method.Method]T),
		children: make(map[string]*Node[T]),
	}
}

// Insert stores the value under the method at the node the template leads to. Inserting
// the same method and template twice overwrites the value.
func (n *Node[T]) Insert(m method.Method, template string, value T) {
	node := n

	for _, segment := range Segments(template) {
		if name, ok := wildcardName(segment); ok {
			node.wildcard = name
			if node.dyn == nil {
				node.dyn = New[T]()
			}

			node = node.dyn
			continue
		}

		next, found := node.children[segment]
		if !found {
			next = New[T]()
			node.children[segment] = next
		}

		node = next
	}

	node.handlers[m] = value
}

// Lookup walks the tree preferring literal segments. When a segment has no literal match
// but the node has a wildcard, the wildcard captures the rest of the path (segments
// rejoined with a slash), e.g. /echo/{cont} captures "a/b" out of /echo/a/b, and the walk
// stops there. A segment matching neither results in not found rather than falling back
// to the node reached so far: with a handler at the root, the fallback would make every
// unregistered path resolve to it.
//
// Returned params are nil, if nothing was captured.
func (n *Node[T]) Lookup(m method.Method, path string) (params map[string]string, value T, found bool) {
	segments := Segments(path)
	node := n

	for i, segment := range segments {
		if next, ok := node.children[segment]; ok {
			node = next
			continue
		}

		if node.dyn == nil {
			return params, value, false
		}

		params = map[string]string{
			node.wildcard: strings.Join(segments[i:], "/"),
		}
		node = node.dyn
		break
	}

	value, found = node.handlers[m]
	return params, value, found
}

// Segments splits the path by slashes, dropping empty segments. So leading, trailing and
// repeating slashes are all insignificant.
func Segments(path string) []string {
	segments := make([]string, 0, strings.Count(path, "/")+1)

	for len(path) > 0 {
		var segment string
		segment, path, _ = strings.Cut(path, "/")
		if len(segment) > 0 {
			segments = append(segments, segment)
		}
	}

	return segments
}

func wildcardName(segment string) (string, bool) {
	if len(segment) < 2 || segment[0] != '{' || segment[len(segment)-1] != '}' {
		return "", false
	}

	return segment[1 : len(segment)-1], true
}
