// Package jsonv decodes and encodes JSON documents whose object key order
// must survive a round trip. Values are plain Go types except objects, which
// decode to *Object.
package jsonv
