package main

import "github.com/dumichanda/LoveOffer-sub001/cmd/relay/cmd"

func main() {
	cmd.Execute()
}
