package main

import "github.com/gelbal/repo-history-analyze/cmd"

func main() {
	cmd.Run()
}
