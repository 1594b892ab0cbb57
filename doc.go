// Package lazpy implements the decompression core of the LAZ point-cloud
// compression format: an adaptive range coder, the probability models it
// decodes against, a signed-integer residual decompressor built on top, and
// the point10 record state machine that combines them into the first (and
// so far only) LAS point-record codec this package supports.
//
// This package decodes; it does not encode, and it does not parse the
// surrounding LAS/LAZ container (headers, VLRs, the chunk table). Callers
// are expected to hand it a ByteSource positioned at the start of a chunk's
// compressed point data and a point10 seed record read verbatim from that
// chunk's header.
//
// # Decoding a chunk
//
// A chunk is decoded by constructing a Point10Decompressor around a
// RangeDecoder started on the chunk's byte source, calling ReadFirst once
// with the chunk's uncompressed seed record, then calling Read once per
// remaining point:
//
//	dec := rangecoding.NewRangeDecoder()
//	if err := dec.Start(source); err != nil { ... }
//	p10 := NewPoint10Decompressor(dec)
//	pt, err := p10.ReadFirst(seed)
//	for i := 1; i < pointCount; i++ {
//		pt, err = p10.Read()
//	}
//
// # Record layout
//
// point10 is the 20-byte LAS point record format 1.0: x, y, z as signed
// 32-bit integers, a 16-bit intensity, a packed bit byte (return number,
// number of returns, scan direction, edge of flight line), classification,
// scan angle rank, user data, and a 16-bit point source ID.
package lazpy
