//go:build windows || plan9

package logger

import (
	"errors"

	"github.com/arloliu/lln/config"
)

func dialSyslog(config.SyslogConfig, string) (syslogWriter, error) {
	return nil, errors.New("syslog is not supported on this platform")
}
