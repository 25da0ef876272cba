// Package fallback answers pose requests from a bundled dataset when the
// catalog API cannot.
//
// The dataset ships inside the binary (poses.json) and may be replaced by a
// file named in the configuration. It is normalized on load, so fallback
// records carry the same guarantees as live ones.
//
// A Resolver wraps one facade call. When the call fails with a timeout, a
// network error, an injected test error, an undecodable body or a not found
// response, and the dataset is not empty, the resolver computes the view
// from the dataset instead and reports a Notice. Unauthorized responses,
// other API errors and cancellation always reach the caller.
//
// List answers return the whole dataset, or one page of it when the query
// carries a limit. With Filter set, the query's search text and difficulty
// are applied first; search runs against an in-memory bleve index built on
// first use. Get answers look the id up and return a not found error that
// still wraps the original failure when the dataset lacks it.
package fallback
