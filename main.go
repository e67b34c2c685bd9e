package main

import (
	"github.com/akashkanabur/AIAgentEvaluation/cmd"
)

func main() {
	cmd.Execute()
}
