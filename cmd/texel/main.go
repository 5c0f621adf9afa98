// Texel builds the vertical list of a document written in a TeX-like
// language and prints it, one element per line.
package main

import (
	"os"

	"src.texel.sh/pkg/buildinfo"
	"src.texel.sh/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, prog.Default())))
}
