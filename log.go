package s7

import (
	"log"
	"os"
	"sync/atomic"
)

// LogProvider RFC5424 log message levels only Debug and Error
type LogProvider interface {
	Errorf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}

// 内部调试实现
type clogs struct {
	provider LogProvider
	// is log output enabled,1: enable, 0: disable
	has uint32
}

// LogMode set enable or disable log output when you has set logger
func (sf *clogs) LogMode(enable bool) {
	if enable {
		atomic.StoreUint32(&sf.has, 1)
	} else {
		atomic.StoreUint32(&sf.has, 0)
	}
}

// setLogProvider set logger provider
func (sf *clogs) setLogProvider(p LogProvider) {
	if p != nil {
		sf.provider = p
	}
}

// Errorf Log ERROR level message.
func (sf *clogs) Errorf(format string, v ...interface{}) {
	if atomic.LoadUint32(&sf.has) == 1 {
		sf.provider.Errorf(format, v...)
	}
}

// Debugf Log DEBUG level message.
func (sf *clogs) Debugf(format string, v ...interface{}) {
	if atomic.LoadUint32(&sf.has) == 1 {
		sf.provider.Debugf(format, v...)
	}
}

// default log
type logger struct {
	*log.Logger
}

var _ LogProvider = (*logger)(nil)

func newDefaultLogger(prefix string) *logger {
	return &logger{
		log.New(os.Stderr, prefix, log.LstdFlags),
	}
}

// Errorf Log ERROR level message.
func (sf *logger) Errorf(format string, v ...interface{}) {
	sf.Printf("[E]: "+format, v...)
}

// Debugf Log DEBUG level message.
func (sf *logger) Debugf(format string, v ...interface{}) {
	sf.Printf("[D]: "+format, v...)
}
