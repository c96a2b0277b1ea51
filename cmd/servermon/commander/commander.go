package commander

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/sergeii/servermon/cmd/servermon/build"
)

type Globals struct {
	Config kong.ConfigFlag `help:"Loads flags from a YAML file, command line flags take precedence" placeholder:"FILE"` // nolint:lll

	LogLevel  string `default:"info"    enum:"debug,info,warn,error" help:"Sets the minimum severity level for log messages"` // nolint:lll
	LogOutput string `default:"console" enum:"console,stdout,json"   help:"Specifies the format for log output"`

	RedisURL string `default:"redis://localhost:6379" help:"Defines the Redis URL connection"`

	ExporterHTTPListenAddress   string        `default:":9000" help:"Sets the address where the Prometheus exporter server listens for requests"`            // nolint:lll
	ExporterHTTPReadTimeout     time.Duration `default:"5s"    help:"Sets the maximum duration to read the request body before timing out"`                  // nolint:lll
	ExporterHTTPWriteTimeout    time.Duration `default:"5s"    help:"Sets the maximum duration to write a response before timing out"`                       // nolint:lll
	ExporterHTTPShutdownTimeout time.Duration `default:"10s"   help:"The amount of time the server will wait gracefully closing connections before exiting"` // nolint:lll

	MonitorName string `default:"Laragon Server"                 help:"Sets the display name of the monitored server"`
	TargetURL   string `default:"http://tassby.kozow.com:8074/" help:"Defines the URL of the monitored server"`

	ProbeTimeout    time.Duration `default:"10s" help:"Sets the maximum time to wait for the monitored server to respond"`                 // nolint:lll
	StatusRetention time.Duration `default:"5m"  help:"Determines how long the latest status is kept after the monitor stops updating it"` // nolint:lll
}

type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	version := fmt.Sprintf("Version: %s (%s) built at %s", build.Version, build.Commit, build.Time)
	fmt.Println(version) // nolint: forbidigo
	os.Exit(0)
	return nil
}

type RunCmd struct {
	kong.Plugins
}

type CLI struct {
	Globals

	Version VersionCmd `cmd:"" help:"Display the app version and exit"`
	Run     RunCmd     `cmd:""`
}
