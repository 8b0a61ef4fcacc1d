package main

import (
	"fmt"
	"os"
)

func fail() {
	os.Exit(2)
}

func main() {
	fmt.Println("start")
	if len(os.Args) > 3 {
		fail()
	}
	defer func() {
		os.Exit(3)
	}()
	os.Exit(1) // want "os.Exit call is forbidden in main function: os.Exit\\(1\\)"
}
