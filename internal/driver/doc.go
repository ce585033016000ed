// Package driver runs the whisk pipeline for one compilation unit:
// load, parse, resolve, fold, codegen and, optionally, writing the
// artifact next to the source.
package driver
