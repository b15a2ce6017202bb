package grim

// Version and BuildDate are overridden at link time:
//
//	go build -ldflags "-X github.com/jupdike/grimjs-sub000.Version=v0.2.0 -X github.com/jupdike/grimjs-sub000.BuildDate=2026-10-15"
var (
	Version   = "v0.1.0-dev"
	BuildDate = "unknown"
)
