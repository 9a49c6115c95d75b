// Package pathsafe canonicalizes filesystem paths and checks containment.
//
// The workspace root is a security boundary. Every path that creates or
// removes workspace state is proven to resolve inside it after symlink
// resolution, so a symlinked ancestor cannot redirect a write or a delete
// elsewhere.
//
// Canonicalize resolves symlinks even for paths that do not exist yet by
// resolving the deepest existing ancestor and re-appending the missing
// components:
//
//	dest := pathsafe.Canonicalize(filepath.Join(root, "repo__task"))
//	if !pathsafe.IsContained(dest, root) {
//	    return errors.OutsideWorkspaceRoot(dest)
//	}
package pathsafe
