package main

import "github.com/yukikurage/company-task-api/internal/commands"

func main() {
	commands.Execute()
}
