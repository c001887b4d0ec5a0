package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arjunsk/cometbench/pkg/y/keygen"
	"github.com/arjunsk/cometbench/pkg/y/stats"
)

func main() {
	baseURL := flag.String("url", "http://0.0.0.0:8080", "payload server")
	n := flag.Int("n", 16, "payloads to fetch and store")
	size := flag.Int("size", 1024, "payload size")
	flag.Parse()

	c := NewClient(*baseURL)
	defer c.Close()

	// fetch payloads and store them back under sequential keys
	var all []byte
	for i := 1; i <= *n; i++ {
		val, err := c.Fill(*size)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		all = append(all, val...)
		if err := c.Put(keygen.Format(int64(i)), val); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	rows, err := c.Scan(keygen.Format(1), *n)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("stored %d payloads, scanned back %d, repeat ratio %.3f\n",
		*n, len(rows), stats.RepeatRatio(all, 8))
}
