package main

import "github.com/mvp-joe/py2dataset/internal/cli"

func main() {
	cli.Execute()
}
