package main

// logging module provides various logging methods
//
// Copyright (c) 2020 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	logs "github.com/sirupsen/logrus"
)

// entries carrying this field are printed as success lines
const successField = "success"

// LogRecord represents a single served request
type LogRecord struct {
	Method        string  `json:"method"`          // http.Request HTTP method
	URI           string  `json:"uri"`             // http.RequestURI
	ClientIP      string  `json:"clientip"`        // client IP address
	BytesOut      int64   `json:"bytes_out"`       // number of bytes sent back
	Proto         string  `json:"proto"`           // http.Request protocol
	Status        int64   `json:"status"`          // response status code
	ContentType   string  `json:"content_type"`    // response content type
	Referer       string  `json:"referer"`         // http referer
	UserAgent     string  `json:"user_agent"`      // http user-agent field
	XForwardedFor string  `json:"x_forwarded_for"` // http.Request X-Forwarded-For
	RemoteAddr    string  `json:"remote_addr"`     // http.Request remote address
	RequestTime   float64 `json:"request_time"`    // http request time
	Timestamp     int64   `json:"timestamp"`       // record timestamp
}

// helper function to unescape logged urls
func utcMsg(data []byte) string {
	s := string(data)
	v, e := url.QueryUnescape(s)
	if e == nil {
		return v
	}
	return s
}

// custom rotate logger
type rotateLogWriter struct {
	RotateLogs *rotatelogs.RotateLogs
}

func (w rotateLogWriter) Write(data []byte) (int, error) {
	return w.RotateLogs.Write([]byte(utcMsg(data)))
}

// consoleFormatter prints entries as "<level> ~> message key=value"
type consoleFormatter struct {
	NoColor bool
}

var (
	debugColor   = color.New(color.FgHiBlack)
	infoColor    = color.New(color.FgHiCyan)
	warnColor    = color.New(color.FgHiYellow)
	errorColor   = color.New(color.FgHiRed)
	successColor = color.New(color.FgHiGreen)
)

func (f *consoleFormatter) prefix(e *logs.Entry) string {
	var c *color.Color
	var name string
	switch e.Level {
	case logs.TraceLevel, logs.DebugLevel:
		c, name = debugColor, "debug"
	case logs.InfoLevel:
		c, name = infoColor, "info"
		if _, ok := e.Data[successField]; ok {
			c, name = successColor, "success"
		}
	case logs.WarnLevel:
		c, name = warnColor, "warn"
	default:
		c, name = errorColor, "error"
	}
	name += " ~>"
	if f.NoColor {
		return name
	}
	return c.Sprint(name)
}

// Format implements logs.Formatter
func (f *consoleFormatter) Format(e *logs.Entry) ([]byte, error) {
	b := e.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}
	b.WriteString(f.prefix(e))
	b.WriteByte(' ')
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k != successField {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// helper function to configure standard logger
func setupLogger(out io.Writer, verbose int, noColor bool) {
	logs.SetOutput(out)
	logs.SetFormatter(&consoleFormatter{NoColor: noColor})
	switch {
	case verbose > 1:
		logs.SetLevel(logs.TraceLevel)
	case verbose == 1:
		logs.SetLevel(logs.DebugLevel)
	default:
		logs.SetLevel(logs.InfoLevel)
	}
}

// setupLogging sends logs to stdout or to daily rotated log files
func setupLogging(config *Configuration) error {
	if config.LogFile == "" {
		setupLogger(os.Stdout, config.Verbose, false)
		return nil
	}
	logName := config.LogFile + "-%Y%m%d"
	hostname, err := os.Hostname()
	if err == nil {
		logName = config.LogFile + "-" + hostname + "-%Y%m%d"
	}
	rl, err := rotatelogs.New(logName)
	if err != nil {
		return errors.Wrapf(err, "unable to create rotate logs %s", logName)
	}
	setupLogger(rotateLogWriter{RotateLogs: rl}, config.Verbose, true)
	return nil
}

// reporter passes asset loading reports to a logrus logger
type reporter struct {
	logger *logs.Logger
}

func newReporter(logger *logs.Logger) reporter {
	return reporter{logger: logger}
}

func (r reporter) Info(format string, args ...interface{}) {
	r.logger.Infof(format, args...)
}

func (r reporter) Warn(format string, args ...interface{}) {
	r.logger.Warnf(format, args...)
}

func (r reporter) Error(format string, args ...interface{}) {
	r.logger.Errorf(format, args...)
}

func (r reporter) Success(format string, args ...interface{}) {
	r.logger.WithField(successField, true).Infof(format, args...)
}

// helper function to log every single user request
func logRequest(r *http.Request, start time.Time, status int, ctype string, bytesOut int64) {
	dataMsg := fmt.Sprintf("[data: %v out]", bytesOut)
	referer := r.Referer()
	if referer == "" {
		referer = "-"
	}
	var clientip string
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		clientip = strings.TrimSpace(strings.Split(xff, ",")[0])
	} else if r.RemoteAddr != "" {
		clientip = strings.Split(r.RemoteAddr, ":")[0]
	}
	refMsg := fmt.Sprintf("[ref: \"%s\" \"%v\"]", referer, r.Header.Get("User-Agent"))
	respMsg := fmt.Sprintf("[req: %v]", time.Since(start))
	uri, err := url.QueryUnescape(r.RequestURI)
	if err != nil {
		uri = r.RequestURI
	}
	logs.Infof("%s %d %s %s %s %s %s %s", r.Proto, status, r.RemoteAddr, r.Method, uri, dataMsg, refMsg, respMsg)
	if !logs.IsLevelEnabled(logs.DebugLevel) {
		return
	}
	rec := LogRecord{
		Method:        r.Method,
		URI:           r.RequestURI,
		ClientIP:      clientip,
		BytesOut:      bytesOut,
		Proto:         r.Proto,
		Status:        int64(status),
		ContentType:   ctype,
		Referer:       referer,
		UserAgent:     r.Header.Get("User-Agent"),
		XForwardedFor: xff,
		RemoteAddr:    r.RemoteAddr,
		RequestTime:   time.Since(start).Seconds(),
		Timestamp:     start.UnixNano() / int64(time.Millisecond),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		logs.WithFields(logs.Fields{"Error": err}).Error("unable to marshal log record")
		return
	}
	logs.Debug(string(data))
}
