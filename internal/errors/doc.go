// Package errors provides coded, actionable errors for the vcore CLI and its
// document and configuration loaders.
//
// Every error carries a code (e.g. "E120") registered with a category, a
// short message and a longer explanation. Document errors may also carry the
// line and column of the offending node, in which case Format prints the
// surrounding lines of the file.
//
// # Categories
//
//   - runtime: reactive runtime failures surfaced to the CLI
//   - config: vcore.yaml / vcore.json problems
//   - document: malformed tree documents
//   - cli: command usage and verification failures
//
// # Usage
//
//	err := errors.New("E122").
//	    WithLocation("trees/next.yaml", 7, 5).
//	    WithSuggestion(`Use either "tag" or "text", not both`)
//
//	errors.PrintError(err)
//	// ERROR E122: Node has both tag and text
//	//
//	//   trees/next.yaml:7:5
//	//
//	//        5 │   - tag: li
//	//        6 │     children:
//	//   →    7 │     - text: one
//	//     ...
package errors
