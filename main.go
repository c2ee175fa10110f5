package main

import "github.com/nikogura/resume-versions/cmd"

func main() {
	cmd.Execute()
}
