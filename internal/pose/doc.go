// Package pose defines the canonical pose record and the normalizer that
// produces it.
//
// The catalog API has shipped several payload shapes over time, so nothing
// downstream reads raw responses directly. Every object, whether it came
// from the API or from the bundled dataset, passes through Normalize, which
// resolves field synonyms, coerces the id, canonicalizes the difficulty,
// derives effect tags and fills placeholders. A Record handed to a view
// always has a name pair, an effect pair, a difficulty, an image and at
// least one tag.
//
// # Response shapes
//
// ExtractList tries each entry of Extractors in order: a bare array, then
// the items, data, poses, yogaPoses and results fields, then the first
// array-valued field in document order. ExtractItem handles the single-pose
// endpoints, accepting either the object itself or one nested under data,
// item or pose.
//
// # Tags
//
// An explicit tag list is used when it names at least one known tag.
// Otherwise tags come from a keyword scan of the effect text; text with no
// keyword is tagged balance. Tags are always reported in the order
// strength, flexibility, balance, relax.
package pose
