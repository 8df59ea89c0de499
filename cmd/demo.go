package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/fzft/go-chaintable/db"
	"github.com/fzft/go-chaintable/log"
	"go.uber.org/zap"
)

var demoEntries = []struct {
	key   string
	value int
}{
	{"I", 1},
	{"V", 5},
	{"X", 10},
}

const demoRule = "\n******************************\n"

// RunDemo walks a default-capacity table through set, get, contains and
// delete, printing the table after every step.
func RunDemo(out io.Writer) error {
	start := time.Now()
	ht := db.New[string, int]()
	fmt.Fprintf(out, "hash table: %s\n", ht)

	fmt.Fprintf(out, "%s\nTesting set:\n\n", demoRule)
	for _, e := range demoEntries {
		fmt.Fprintf(out, "set(%q, %d)\n", e.key, e.value)
		ht.Set(e.key, e.value)
		fmt.Fprintf(out, "hash table: %s\n", ht)
	}

	fmt.Fprintf(out, "%s\nTesting get:\n\n", demoRule)
	for _, e := range demoEntries {
		value, err := ht.Get(e.key)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "get(%q): the associated value is %d\n", e.key, value)
	}
	fmt.Fprintf(out, "contains(%q): %t\n", "X", ht.Contains("X"))
	fmt.Fprintf(out, "length: %d\n", ht.Len())
	fmt.Fprintf(out, "hash table: %s\n", ht)

	fmt.Fprintf(out, "%s\nTesting delete:\n\n", demoRule)
	for _, e := range demoEntries {
		fmt.Fprintf(out, "delete(%q)\n", e.key)
		if err := ht.Delete(e.key); err != nil {
			return err
		}
		fmt.Fprintf(out, "hash table: %s\n", ht)
		fmt.Fprintf(out, "contains(%q): %t\n", "X", ht.Contains("X"))
		fmt.Fprintf(out, "length: %d\n\n", ht.Len())
	}

	elapsed := time.Since(start)
	log.Logger.Debug("demo finished", zap.Duration("elapsed", elapsed))
	fmt.Fprintf(out, "%s\nRuntime is %.3g milliseconds.\n", demoRule, float64(elapsed.Microseconds())/1000)
	return nil
}
