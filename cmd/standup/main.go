package main

import "github.com/freddyb/standup/cmd/standup/cmd"

func main() {
	cmd.Execute()
}
