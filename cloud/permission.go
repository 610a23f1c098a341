package cloud

const metaPermissionKey = "permission"

// recomputePermissions implements §4.4 in full: every non-leaf's aggregated
// permission is rebuilt from scratch, bottom-up, after each insertion. A
// full recompute (rather than patching just the inserted path) keeps the
// rule dead simple and matches "for every non-leaf" in the spec literally.
func recomputePermissions(root *Node, settings Settings) {
	clearPermissionMeta(root)

	for _, leaf := range collectLeaves(root) {
		if leaf.Component == nil || leaf.Component.OwningCommand == nil {
			continue
		}

		perm := leaf.Component.OwningCommand.Permission
		leaf.Meta[metaPermissionKey] = perm

		for ancestor := leaf.Parent; ancestor != nil; ancestor = ancestor.Parent {
			existing, _ := ancestor.Meta[metaPermissionKey].(Permission)

			p := perm
			if existing != nil {
				p = AnyOf(perm, existing)
			}

			if ancestor.Component != nil && ancestor.Component.OwningCommand != nil {
				if settings.EnforceIntermediaryPermissions {
					p = ancestor.Component.OwningCommand.Permission
				} else {
					p = AnyOf(p, ancestor.Component.OwningCommand.Permission)
				}
			}

			ancestor.Meta[metaPermissionKey] = p
		}
	}
}

func clearPermissionMeta(n *Node) {
	delete(n.Meta, metaPermissionKey)

	for _, c := range n.Children {
		clearPermissionMeta(c)
	}
}

func collectLeaves(n *Node) []*Node {
	if n.IsLeaf() {
		return []*Node{n}
	}

	var out []*Node

	for _, c := range n.Children {
		out = append(out, collectLeaves(c)...)
	}

	return out
}

// findMissingPermission answers "which permission blocks this sender at
// node, or none?" per §4.4.
func findMissingPermission(ctx *ParseContext, node *Node) Permission {
	if p, ok := node.Meta[metaPermissionKey].(Permission); ok {
		if !ctx.hasPermission(p) {
			return p
		}

		return nil
	}

	if node.IsLeaf() {
		if node.Component != nil && node.Component.OwningCommand != nil {
			perm := node.Component.OwningCommand.Permission
			if !ctx.hasPermission(perm) {
				return perm
			}
		}

		return nil
	}

	var missing Permission

	for _, c := range node.Children {
		m := findMissingPermission(ctx, c)
		if m == nil {
			return nil
		}

		missing = AnyOf(missing, m)
	}

	return missing
}
