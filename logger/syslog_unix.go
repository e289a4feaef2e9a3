//go:build !windows && !plan9

package logger

import (
	"log/syslog"

	"github.com/arloliu/lln/config"
)

func dialSyslog(cfg config.SyslogConfig, tag string) (syslogWriter, error) {
	facility := syslog.LOG_LOCAL0 + syslog.Priority(cfg.Facility<<3)

	w, err := syslog.Dial(cfg.Network, cfg.Address, facility|syslog.LOG_INFO, tag)
	if err != nil {
		return nil, err
	}

	return w, nil
}
