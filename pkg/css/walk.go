package css

// Walk visits every node below c in document order. Returning false from fn
// skips the children of the visited node.
func Walk(c Container, fn func(Node) bool) {
	for _, n := range c.Children() {
		descend := fn(n)
		if child, ok := n.(Container); ok && descend {
			Walk(child, fn)
		}
	}
}

// WalkRules visits every rule below c, including rules nested in at-rules.
func WalkRules(c Container, fn func(*Rule)) {
	Walk(c, func(n Node) bool {
		if r, ok := n.(*Rule); ok {
			fn(r)
		}
		return true
	})
}

// WalkDecls visits every declaration below c.
func WalkDecls(c Container, fn func(*Declaration)) {
	Walk(c, func(n Node) bool {
		if d, ok := n.(*Declaration); ok {
			fn(d)
		}
		return true
	})
}

// WalkAtRules visits every at-rule below c.
func WalkAtRules(c Container, fn func(*AtRule)) {
	Walk(c, func(n Node) bool {
		if a, ok := n.(*AtRule); ok {
			fn(a)
		}
		return true
	})
}

// WalkComments visits every comment below c.
func WalkComments(c Container, fn func(*Comment)) {
	Walk(c, func(n Node) bool {
		if cm, ok := n.(*Comment); ok {
			fn(cm)
		}
		return true
	})
}
