package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/luthersystems/lispy/parser"
)

func benchmarkSource(n int) string {
	var b strings.Builder
	b.WriteString("(define add (lambda (a b) (+ a b)))\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "(define x%d ('add (%d (- %d 1))))\n", i, i, i)
		fmt.Fprintf(&b, "(print (if (< x%d 100) (\"small\") (x%d)))\n", i, i)
	}
	return b.String()
}

func BenchmarkParser(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		src := benchmarkSource(n)
		b.Run(fmt.Sprint(n), func(b *testing.B) {
			b.SetBytes(int64(len(src)))
			for i := 0; i < b.N; i++ {
				_, err := parser.ParseString(src)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkComplete(b *testing.B) {
	src := []byte(benchmarkSource(100))
	for i := 0; i < b.N; i++ {
		if !parser.Complete(src) {
			b.Fatal("source reported incomplete")
		}
	}
}
