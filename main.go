package main

import "github.com/viperdavethesnake/pan-demo-data-sub000/cmd"

func main() {
	cmd.Execute()
}
