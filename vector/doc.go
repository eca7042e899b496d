// Package vector defines the record model shared by this module and the
// similarity primitives used to rank records. It includes:
//   - Record and Match (a record paired with its similarity score)
//   - CosineSimilarity, Dot, Norm and L2Distance
//   - Typed errors for dimension mismatches and persistence failures
//   - Embedding encoding (BLOB) used by the SQLite snapshot and SQL functions
package vector
