package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/arjunsk/cometbench/pkg/y/keygen"
)

func main() {

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	gen := keygen.Build(keygen.SEQUENTIAL, 0, 100)

	for i := 0; i < 100; i++ {
		key := keygen.Format(gen.Next(r))
		fmt.Println(key)
	}
}
