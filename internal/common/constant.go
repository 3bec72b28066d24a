// Package common contains shared constants and sentinel errors used across
// the storage client, the gateway implementations and the gateway server.
package common

// ChunkLength is the fixed number of bytes carried by one upload or read call.
// The last chunk of a file is shorter when the size is not a multiple of it.
const ChunkLength int64 = 1 << 20

// WordSize is the width of one word returned by a chunk read.
const WordSize = 32
