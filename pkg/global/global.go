package global

import (
	"time"
)

var (
	Version   = "0.0.1"
	BuildTime = "none"
	Verbose   = false
	Quiet     = false

	ConfigFilename = "mirror-test.yaml"
	ImagePrefix    = "mirror-test"

	DefaultBuildTool = "podman"
	DefaultPort      = 8080
	DefaultTimeout   = 10 * time.Minute
)
