package buildinfo

import "runtime"

const Name = "merkled"

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
	Go      = runtime.Version()
	OS      = runtime.GOOS
	Arch    = runtime.GOARCH
)
