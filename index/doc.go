// Package index defines a minimal abstraction for ranking a sequence of
// vectors against a query. The store keeps one index in step with its record
// sequence; the bruteforce implementation scores every vector.
package index
