// Package transform holds the in-process stages the runner applies to a
// fetched envelope. Each stage mutates the envelope in place; the runner
// applies them in configured order and aborts on the first error.
package transform
