package main

import "github.com/yarlson/loadingbar/cmd"

func main() {
	cmd.Execute()
}
