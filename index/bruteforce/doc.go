// Package bruteforce provides an exhaustive vector index that answers top-k
// queries by scoring every vector with cosine similarity and stable-sorting
// the scores.
package bruteforce
