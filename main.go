package main

import "github.com/ruddercad/restorepoint/cmd"

func main() {
	cmd.Execute()
}
