// Package hashslug encodes integer record ids into short, salted, reversible
// strings ("slugs") suitable for URLs, and decodes them back.
//
// Each logical namespace (usually one per record type) gets its own salt,
// derived as the hex SHA-256 of the application secret followed by the
// namespace's custom salt or, if none is set, its key. The derived
// configuration is computed once per namespace by a Registry and reused for
// the Registry's lifetime.
//
//	reg := hashslug.NewRegistry(os.Getenv("APP_KEY"))
//	posts := hashslug.NewNamespace("blog.Post")
//
//	s, err := reg.Encode(posts, 1)       // e.g. "Xk3Pq"
//	id, ok, err := reg.Decode(posts, s) // 1, true, nil
//
// Slugs are not encrypted and carry no integrity check. Anyone who learns or
// guesses the salt can decode them, and the mapping has no cryptographic
// avalanche guarantee. An empty application secret is accepted but makes the
// salt guessable from the namespace key alone.
//
// The default engine is Hashids, compatible with slugs produced by other
// Hashids implementations given the same salt, alphabet and minimum length.
// EngineSqids is available for new deployments that do not need that
// compatibility. Its slugs end in two check characters derived from the
// salt, so strings the codec did not produce are rejected about as reliably
// as with Hashids.
package hashslug
