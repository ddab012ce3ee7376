// Package formatter turns log entries into single display lines.
//
// TextFormatter is driven by a message template made of literal text and
// placeholders such as {level:8} or {caller:-30}. A positive width
// right-aligns the value, a negative one left-aligns it, and a leading
// zero pads numbers with zeros. "{{" and "}}" write literal braces.
//
// The caller placeholder renders the source location in a dotted,
// package-like form ("internal.server.handler.Server.Handle()"). Long
// locations keep their tail behind an ellipsis so the column never grows
// past the configured limit. Errors attached to an entry are collapsed
// into one line of the form "<Type>: <message> in <func>() on line <N>".
//
// Colour is decided per call: handlers writing to a terminal ask for
// coloured output with FormatTTY or Render(entry, true). Escape sequences
// wrap whole padded fields, so stripping them always yields the plain
// rendering byte for byte.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
