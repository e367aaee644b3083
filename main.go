package main

import "github.com/prateek-arvo/sonar/cmd"

func main() {
	cmd.Execute()
}
