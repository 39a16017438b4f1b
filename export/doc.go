// Package export writes Candid values in general purpose data formats.
//
// Values are first projected onto plain Go data with Native, then handed to
// the format's encoder. The projection is lossy: widths, opt nesting and
// the distinction between records and variants are not preserved, so the
// output is meant for inspection and interop rather than round trips.
//
//	c, _ := export.ByName("cbor")
//	out, err := c.MarshalArgs(args)
package export
