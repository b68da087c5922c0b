package main

import "github.com/pascalleclercq/google-upload-plugin/cmd"

func main() {
	cmd.Execute()
}
