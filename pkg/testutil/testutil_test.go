package testutil

import (
	"os"
	"testing"

	"src.texel.sh/pkg/tt"
)

func TestDedent(t *testing.T) {
	tt.Test(t, tt.Fn("Dedent", Dedent), tt.Table{
		tt.Args("\n\ta\n\t  b\n").Rets("a\n  b\n"),
		tt.Args("  a\n\n    b").Rets("a\n\n  b"),
		tt.Args("a\n b").Rets("a\n b"),
	})
}

func TestSet(t *testing.T) {
	x := 1
	t.Run("inner", func(t *testing.T) {
		Set(t, &x, 2)
		if x != 2 {
			t.Errorf("x = %d, want 2", x)
		}
	})
	if x != 1 {
		t.Errorf("x = %d after cleanup, want 1", x)
	}
}

func TestWriteFile(t *testing.T) {
	dir := TempDir(t)
	path := WriteFile(dir, "a/b.txt", "content")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "content" {
		t.Errorf("read %q, want %q", data, "content")
	}
}
