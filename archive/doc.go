// Package archive stores encoded lines in compressed, checksummed segments.
//
// # File Layout
//
// An archive is a sequence of segments with no file-level header, so archives can be
// concatenated and appended to:
//
//	segment := header(32 bytes) payload(PayloadSize bytes)
//
// The raw payload is the segment's lines joined by LF. Encoded lines never contain a raw
// line break, which makes LF an unambiguous line terminator. The stored payload is the
// raw payload compressed with the algorithm named in the header (see package compress),
// and the header carries the xxHash64 of the raw payload for verification.
//
// # Writing
//
//	w, err := archive.NewWriter(f,
//	    archive.WithCompression(format.CompressionZstd),
//	    archive.WithMaxLines(1000),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, rec := range records {
//	    if err := w.WriteFields(rec...); err != nil {
//	        return err
//	    }
//	}
//	return w.Close()
//
// # Reading
//
//	r := archive.NewReader(f)
//	for seg, err := range r.All() {
//	    if err != nil {
//	        return err
//	    }
//	    for i, res := range seg.Fields(nil) {
//	        fmt.Println(i, res.Fields, res.Err)
//	    }
//	}
//
// Reader verifies magic, version, compression type, raw size, checksum and line count of
// every segment before returning it.
package archive
