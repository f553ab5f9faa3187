// Package metadata resolves a Cargo manifest to the package layout needed by
// the build pipeline.
//
// A [Loader] shells out to "cargo metadata" and decodes the workspace root,
// the target directory, and the root package of the manifest. Only the
// fields the build needs are decoded; dependency resolution is skipped with
// --no-deps.
//
// Example usage:
//
//	meta, err := metadata.Loader{}.Load(ctx, "program/Cargo.toml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(meta.TargetDirectory)
package metadata
