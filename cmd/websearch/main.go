package main

import (
	websearchcmd "github.com/initializ/websearch/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	websearchcmd.SetVersionInfo(version, commit)
	websearchcmd.Execute()
}
