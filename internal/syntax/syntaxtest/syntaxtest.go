// Package syntaxtest provides syntax level test utilities.
//
// Most importantly it contains [Tokenize], a small Liquid HTML tokenizer covering the
// subset of the language used in this module's tests. It is deliberately simple and is
// not a replacement for a real tokenizer, its purpose is to let tests be written as
// template text instead of hand computed offsets.
package syntaxtest

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.followtheprocess.codes/themecheck/internal/syntax/cst"
)

// Producer is a [cst.Producer] backed by [Tokenize].
var Producer = cst.ProducerFunc(Tokenize)

// AllFilesWithExtension returns an iterator over all filepaths under
// root with the matching extension, recursively.
//
// A call to AllFilesWithExtension like this:
//
//	for file, err := range AllFilesWithExtension(".", ".liquid") {
//	    // Loop body
//	}
//
// Is roughly equivalent to the following in bash:
//
//	for file in **/*.liquid; do { # stuff }; done
func AllFilesWithExtension(root, ext string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				yield("", walkErr)
				return walkErr
			}

			if d.Type().IsRegular() && filepath.Ext(d.Name()) == ext {
				if !yield(path, nil) {
					return fs.SkipAll
				}
			}

			return nil
		})
		// handle the error returned by WalkDir itself
		if err != nil {
			yield("", err)
		}
	}
}
