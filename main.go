package main

import "github.com/note2tabs/note2tabsWeb-sub001/cmd"

func main() {
	cmd.Execute()
}
