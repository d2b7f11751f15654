// Package shale is the Composition Root for the shale client library.
//
// It connects the object and type model (Domain Layer) with the binding
// adapters (Transport Layer) behind a session facade.
//
// Philosophy:
//
// Shale is a client-side runtime for CMIS-style content repositories. A
// Session is a stateful handle on one repository: it resolves type
// definitions, converts wire data into typed objects, and caches both so
// repeated reads stay local. The binding behind the session is agnostic,
// the default in-memory implementation exists for tests and tooling, and
// real transports plug in through core.Binding.
//
// Features:
//
//   - **Typed Object Model**: Documents, folders, relationships and
//     policies resolved against their type definitions at runtime.
//   - **Lazy Collections**: Children and type listings page on demand,
//     with skip-ahead and single-page views.
//   - **Session Caching**: Objects keyed by identity plus fetch settings,
//     types cached once per session, explicit invalidation.
//   - **Fixture Binding**: In-memory repository loaded from YAML files,
//     optionally kept fresh by a filesystem watcher.
//   - **Typed Retrieval**: Generic accessors (`FirstProperty[T]`) for
//     type-safe property access.
//
// Usage:
//
//	// Connect with functional options
//	s, err := shale.Connect("demo",
//		shale.WithFixtures("./fixtures"),
//		shale.WithLogger(logger),
//	)
//
//	// Fetch the root folder and walk its children
//	root, err := s.RootFolder(ctx, nil)
//	err = root.Children(ctx, nil).Each(func(obj shale.Object) bool {
//		fmt.Println(obj.Name())
//		return true
//	})
package shale
