// Package logger writes application logs as lln lines.
//
// Each entry is one line:
//
//	2024-05-01T10:00:00.123|web1|WARNING|billing.db|slow query|ms=1250|${"table": "orders"}
//
// The first five columns are the time, the first label of the host name, the level,
// the logger name and the message. The remaining columns are the entry's fields encoded
// with the codec package, so the part after the logger name can be read back with
// lln.Decode.
//
// # Registry
//
// A Registry owns the sinks (stdout, syslog, rotating file) and a filter table mapping
// logger names to levels:
//
//	reg, err := logger.New(cfg.Logging, logger.WithFilters(map[string]string{
//	    ".db":          "warning",
//	    "billing.http": logger.Off,
//	}))
//	if err != nil {
//	    return err
//	}
//	defer reg.Close()
//
//	log := reg.Get("db")
//	log.Warning("slow query", field.Pair("ms", "1250"))
//
// # Using zap directly
//
// Encoder is a plain zapcore.Encoder and can be combined with any zap core. Keyed zap
// fields become pairs; Fields attaches positional frames:
//
//	core := zapcore.NewCore(logger.NewEncoder(host), zapcore.Lock(os.Stdout), zap.InfoLevel)
//	zap.New(core).Named("worker").Info("job done", zap.Int("id", 7), logger.Fields(field.Text("ok")))
//	// ...|INFO|worker|job done|id=7|ok
//
// # Tracebacks
//
// A message equal to "traceback" (any case) is not encoded. Its text arguments follow
// "TRACEBACK|" on continuation rows, each starting with "##".
package logger
