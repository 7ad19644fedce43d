// Package document loads OpenAPI and Swagger documents into an ordered node tree.
//
// The loader accepts YAML or JSON. Content starting with '{' or '[' is decoded as
// JSON, everything else as YAML. Both formats produce the same tree of [Node]
// values, and every mapping keeps the key order of the source text: paths,
// methods, responses and component schemas are always visited in the order the
// author wrote them.
//
// # Optional fields
//
// A parsed document is treated as untrusted, loosely shaped data. Rather than
// decoding into rigid structs, the package exposes small views ([Operation],
// [Parameter], [Schema], ...) whose accessors return explicit optional values and
// apply documented fallbacks:
//
//   - An operation without tags belongs to the single tag "General".
//   - An operation's summary falls back to its operationId, then to "".
//   - A missing description, parameter list or response map is simply absent.
//   - Path item keys that are not operation methods are ignored.
//
// None of these situations are errors. The only error a caller has to handle is
// a malformed document, reported as an [oaserrors.ParseError].
//
// # Example
//
//	doc, err := document.LoadWithOptions(
//		document.WithFilePath("openapi.yaml"),
//		document.WithLogger(document.NewSlogAdapter(slog.Default())),
//	)
//	if err != nil {
//		return err
//	}
//	for _, item := range doc.Paths() {
//		for _, op := range item.Operations() {
//			fmt.Println(op.Method, op.Path, op.Summary())
//		}
//	}
package document
