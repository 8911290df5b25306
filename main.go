package main

import "github.com/anubhavpatrick/Cluster-Images/cmd"

func main() {
	cmd.Execute()
}
